// Command vocctl is the operator CLI for the Voice of Christ API: schema
// migrations, default content, admin accounts and the local store.
package main

import (
	"os"

	"github.com/voiceofchrist/churchsite/internal/pkg/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logger.Error().Err(err).Msg("vocctl failed")
		os.Exit(1)
	}
}
