// Package httpserver wraps net/http.Server with context-driven graceful
// shutdown and provides liveness and readiness handlers.
//
//	srv := httpserver.New(cfg, log)
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
//	defer stop()
//	err := srv.Run(ctx, router)
package httpserver
