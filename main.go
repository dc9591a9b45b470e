package main

import (
	"context"
	"time"

	"github.com/firmanbudi/otpgate/internal/app"
)

// @title           OTPGate API
// @version         1.0
// @description     OTPGate provides password plus email verification code authentication APIs.
// @license.name    MIT
// @license.url     https://mit-license.org/
// @server          http://localhost:8080
// @securityDefinitions.apikey  BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT.
func main() {
	application := app.New()
	wait := application.Start()
	<-wait
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	application.Stop(ctx)
}
