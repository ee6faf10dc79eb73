package job

import (
	"fmt"

	"github.com/rs/zerolog"
)

// asynqLogger routes asynq's internal logging into zerolog.
type asynqLogger struct {
	log *zerolog.Logger
}

func newAsynqLogger(l *zerolog.Logger) *asynqLogger {
	sub := l.With().Str("component", "asynq").Logger()
	return &asynqLogger{log: &sub}
}

func (a *asynqLogger) Debug(args ...interface{}) { a.log.Debug().Msg(fmt.Sprint(args...)) }
func (a *asynqLogger) Info(args ...interface{})  { a.log.Info().Msg(fmt.Sprint(args...)) }
func (a *asynqLogger) Warn(args ...interface{})  { a.log.Warn().Msg(fmt.Sprint(args...)) }
func (a *asynqLogger) Error(args ...interface{}) { a.log.Error().Msg(fmt.Sprint(args...)) }
func (a *asynqLogger) Fatal(args ...interface{}) { a.log.Fatal().Msg(fmt.Sprint(args...)) }
