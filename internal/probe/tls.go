package probe

import (
	"strings"

	"github.com/projectdiscovery/tlsx/pkg/tlsx"
	"github.com/projectdiscovery/tlsx/pkg/tlsx/clients"
	"github.com/rs/zerolog/log"

	"github.com/sunnybai72592/eternyx-haunted-hollow-sub002/internal/types"
)

const (
	// handshakeTimeout is the per-connection timeout in seconds for the
	// TLS handshake probe
	handshakeTimeout = 10
	// handshakeRetries is the retry count for the handshake probe
	handshakeRetries = 2
	// httpsPort is the port probed for TLS negotiation
	httpsPort = "443"
)

// probeHandshake negotiates a live TLS connection to observe the highest
// protocol version and the selected cipher, filling in the flags the HEAD
// probe cannot see. Failures leave the flags untouched.
func (p *Prober) probeHandshake(hostname string, features *types.TLSFeatures) {
	options := &clients.Options{
		Timeout:    handshakeTimeout,
		Retries:    handshakeRetries,
		MinVersion: "tls10",
		MaxVersion: "tls13",
	}

	service, err := tlsx.New(options)
	if err != nil {
		log.Debug().Err(err).Msg("tls handshake probe initialization failed")
		return
	}

	response, err := service.Connect(hostname, "", httpsPort)
	if err != nil || response == nil {
		log.Debug().Err(err).Str("hostname", hostname).Msg("tls handshake probe failed")
		return
	}

	version := strings.ToLower(response.Version)
	if strings.Contains(version, "tls13") || strings.Contains(version, "1.3") {
		features.SupportsTLS13 = true
	}

	// Every TLS 1.3 suite provides forward secrecy; for older versions the
	// negotiated cipher must use ephemeral key exchange.
	cipher := strings.ToUpper(response.Cipher)
	if features.SupportsTLS13 || strings.Contains(cipher, "ECDHE") || strings.Contains(cipher, "DHE") {
		features.PerfectForwardSecrecy = true
	}
}
