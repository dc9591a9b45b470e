package inbound

import (
	"context"

	"github.com/firmanbudi/otpgate/internal/auth/usecase"
	"github.com/firmanbudi/otpgate/internal/pkg/router"
)

type uc interface {
	Login(ctx context.Context, in usecase.LoginInput) (*usecase.LoginOutput, error)
	VerifyCode(ctx context.Context, in usecase.VerifyCodeInput) (*usecase.VerifyCodeOutput, error)
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.POST("/api/v1/auth/login", end.Login)
	r.POST("/api/v1/auth/verify-code", end.VerifyCode)
	r.GET("/api/v1/auth/me", end.Me) // need authenticated
}
