package go_func_utils

import (
	"log"
	"runtime/debug"
)

// SafeGo runs fn on a new goroutine. A panic is written to logger with its stack before it
// is re-raised, so it survives even when stderr is not being watched.
func SafeGo(logger *log.Logger, name string, fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				logger.Printf("PANIC in %s: %v\n%s", name, r, debug.Stack())
				panic(r)
			}
		}()
		fn()
	}()
}

// SafeGoErr is SafeGo for functions returning an error. The error, nil included, is
// delivered on the returned channel.
func SafeGoErr(logger *log.Logger, name string, fn func() error) <-chan error {
	done := make(chan error, 1)
	SafeGo(logger, name, func() {
		done <- fn()
	})
	return done
}
