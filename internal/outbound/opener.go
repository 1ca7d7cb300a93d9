package outbound

import (
	"os/exec"
	"runtime"
	"time"

	"github.com/rs/zerolog/log"
)

// Opener launches a URL in whatever context handles it (browser tab, mail
// client). Implementations are best effort.
type Opener interface {
	Open(url string) error
}

// FallbackDelay is how long the primary channel gets before the fallback is
// attempted.
const FallbackDelay = time.Second

// OpenWithFallback tries the primary channel first and attempts the fallback
// only if the primary appears not to have opened within delay. opened probes
// whether the primary took; a nil probe trusts a nil Open error. This is a UI
// convenience, not guaranteed delivery.
func OpenWithFallback(o Opener, primary, fallback string, delay time.Duration, opened func() bool) {
	if err := o.Open(primary); err != nil {
		log.Debug().Err(err).Msg("primary draft channel failed, using fallback")
		if err := o.Open(fallback); err != nil {
			log.Debug().Err(err).Msg("fallback draft channel failed")
		}
		return
	}
	if opened == nil {
		return
	}
	time.Sleep(delay)
	if !opened() {
		if err := o.Open(fallback); err != nil {
			log.Debug().Err(err).Msg("fallback draft channel failed")
		}
	}
}

// ExecOpener shells out to the platform URL handler. Used when the admin
// dashboard runs on the same box as the server (dev mode).
type ExecOpener struct{}

func (ExecOpener) Open(url string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	default:
		return exec.Command("xdg-open", url).Start()
	}
}
