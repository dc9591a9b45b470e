package router

import (
	"net"
	"net/http"
	"strings"
)

// middlewareIP rewrites RemoteAddr to the client IP reported by trusted
// proxy headers, falling back to the socket address.
func middlewareIP(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ip := clientIP(r); ip != "" {
			r.RemoteAddr = ip
		}
		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	var ip string

	switch {
	case r.Header.Get("True-Client-IP") != "":
		ip = r.Header.Get("True-Client-IP")
	case r.Header.Get("X-Real-IP") != "":
		ip = r.Header.Get("X-Real-IP")
	case r.Header.Get("X-Forwarded-For") != "":
		ip, _, _ = strings.Cut(r.Header.Get("X-Forwarded-For"), ",")
	}

	if ip != "" && net.ParseIP(strings.TrimSpace(ip)) != nil {
		return strings.TrimSpace(ip)
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && net.ParseIP(host) != nil {
		return host
	}
	return ""
}
