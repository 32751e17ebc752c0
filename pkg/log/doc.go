/*
Package log provides structured logging via zerolog: a global logger,
configurable level and output, and component/account/queue-scoped
child loggers.

# Architecture

	┌──────────────────── LOGGING SYSTEM ──────────────────────┐
	│                                                            │
	│  ┌────────────────────────────────────────────┐          │
	│  │            Global Logger                     │          │
	│  │  - zerolog.Logger instance                  │          │
	│  │  - initialized via log.Init()               │          │
	│  │  - thread-safe for concurrent use           │          │
	│  └──────────────────┬─────────────────────────┘          │
	│                     │                                      │
	│  ┌──────────────────▼─────────────────────────┐          │
	│  │           Configuration                     │          │
	│  │  - Level: debug/info/warn/error             │          │
	│  │  - Format: JSON or console (human)          │          │
	│  │  - Output: stdout, file, or custom writer   │          │
	│  └──────────────────┬─────────────────────────┘          │
	│                     │                                      │
	│  ┌──────────────────▼─────────────────────────┐          │
	│  │         Scoped Loggers                      │          │
	│  │  - WithComponent("client")                  │          │
	│  │  - WithAccountID("acct-1")                  │          │
	│  │  - WithQueueID("work-items")                │          │
	│  └────────────────────────────────────────────┘           │
	└────────────────────────────────────────────────────────┘

# Log Levels

  - Debug: detailed tracing, development only
  - Info: general informational messages, default production level
  - Warn: unexpected but non-fatal conditions
  - Error: operation failures that need investigation
  - Fatal: unrecoverable startup errors (logs then os.Exit(1))

# Usage

Initializing the logger:

	import "github.com/cuemby/nebula/pkg/log"

	log.Init(log.Config{
		Level:      log.InfoLevel,
		JSONOutput: true,
		Output:     os.Stdout,
	})

Simple logging:

	log.Info("repository service starting")
	log.Debug("resolving account certificate")
	log.Warn("certificate chain nearing depth cap")
	log.Error("failed to commit document")

Structured logging:

	log.Logger.Info().
		Str("account_id", "acct-1").
		Str("queue_id", "work-items").
		Msg("message enqueued")

Component and scoped loggers:

	clientLog := log.WithComponent("client")
	clientLog.Debug().Str("operation", "commitDocument").Msg("client operation started")

	acctLog := log.WithAccountID("acct-1")
	acctLog.Info().Msg("credential validated")

	queueLog := log.WithQueueID("work-items")
	queueLog.Debug().Msg("message enqueued")

# Design Patterns

Global logger: one package-level Logger instance, initialized once at
process start (cmd/nebula's root command calls log.Init from
cobra.OnInitialize) and read from every package without being passed
down the call stack.

Scoped child loggers: WithComponent/WithAccountID/WithQueueID return a
zerolog.Logger with one field already attached, so callers chain
.With() to add more without repeating the first field at every call
site — this is how pkg/client's per-operation logger is built.

Structured over interpolated: always attach typed fields (.Str, .Err)
rather than formatting values into the message string, so JSON output
stays parseable by log aggregation tools.
*/
package log
