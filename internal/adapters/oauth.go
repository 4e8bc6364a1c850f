package adapters

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"time"

	"songshelf/internal/utils"
)

// completeFunc finishes a login from the redirect request
type completeFunc func(r *http.Request) error

// promptLogin prints the login URL and tries to open it in the browser
func promptLogin(out io.Writer, log *slog.Logger, platform, authURL string) {
	fmt.Fprintf(out, "Please log in to %s by visiting the following page in your browser: %s\n", platform, authURL)
	if err := utils.OpenBrowser(authURL); err != nil {
		log.Debug("browser not opened", "error", err)
	}
}

// awaitCallback serves the OAuth redirect on the host and path of redirectURL
// until one request completes the login or ctx is done.
func awaitCallback(ctx context.Context, redirectURL string, complete completeFunc) error {
	u, err := url.Parse(redirectURL)
	if err != nil {
		return fmt.Errorf("invalid redirect url %q: %w", redirectURL, err)
	}
	path := u.Path
	if path == "" {
		path = "/"
	}

	done := make(chan error, 1)
	mux := http.NewServeMux()
	mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
		if err := complete(r); err != nil {
			http.Error(w, "Couldn't complete login", http.StatusForbidden)
			select {
			case done <- err:
			default:
			}
			return
		}
		fmt.Fprintf(w, "Login Completed! You can now close this window.")
		select {
		case done <- nil:
		default:
		}
	})

	ln, err := net.Listen("tcp", u.Host)
	if err != nil {
		return fmt.Errorf("listening for oauth callback: %w", err)
	}
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			select {
			case done <- err:
			default:
			}
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
