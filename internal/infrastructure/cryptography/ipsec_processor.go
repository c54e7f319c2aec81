package cryptography

import (
	"fmt"
	"strings"

	"github.com/MGTheTrain/crypto-trace/internal/domain/cryptoalg"
	"github.com/MGTheTrain/crypto-trace/internal/pkg/logger"
)

var (
	ipsecOriginalIP  = cryptoalg.IPsecSegment{Type: "header-ip", Label: "Original IP header", Description: "Original source and destination"}
	ipsecTransport   = cryptoalg.IPsecSegment{Type: "header-transport", Label: "TCP/UDP", Description: "Ports"}
	ipsecPayload     = cryptoalg.IPsecSegment{Type: "payload", Label: "Data (payload)", Description: "Message"}
	ipsecNewIP       = cryptoalg.IPsecSegment{Type: "header-ip-new", Label: "New IP header", Description: "Gateway-to-gateway addresses"}
	ipsecEncStart    = cryptoalg.IPsecSegment{Type: "marker-enc-start", Label: "Encryption start"}
	ipsecEncEnd      = cryptoalg.IPsecSegment{Type: "marker-enc-end", Label: "Encryption end"}
	ipsecESPHeader   = cryptoalg.IPsecSegment{Type: "header-esp-head", Label: "ESP header", Description: "SPI, sequence number"}
	ipsecESPTrailer  = cryptoalg.IPsecSegment{Type: "header-esp-trail", Label: "ESP trailer", Description: "Padding, next header"}
	ipsecESPAuth     = cryptoalg.IPsecSegment{Type: "header-esp-auth", Label: "ESP auth", Description: "ICV"}
	ipsecAHTransport = cryptoalg.IPsecSegment{Type: "header-ah", Label: "AH header", Description: "Authentication (SPI, sequence, ICV)"}
	ipsecAHTunnel    = cryptoalg.IPsecSegment{Type: "header-ah", Label: "AH header", Description: "Authentication"}
)

// ipsecProcessor struct that implements the IPsecProcessor interface
type ipsecProcessor struct {
	logger logger.Logger
}

// NewIPsecProcessor creates and returns a new instance of ipsecProcessor
func NewIPsecProcessor(logger logger.Logger) (cryptoalg.IPsecProcessor, error) {
	return &ipsecProcessor{logger: logger}, nil
}

// Layout returns the packet segments in wire order
func (i *ipsecProcessor) Layout(protocol, mode string) (*cryptoalg.IPsecLayout, error) {
	protocol = strings.ToLower(strings.TrimSpace(protocol))
	mode = strings.ToLower(strings.TrimSpace(mode))

	var segments []cryptoalg.IPsecSegment
	switch {
	case protocol == cryptoalg.IPsecAH && mode == cryptoalg.IPsecTransport:
		segments = []cryptoalg.IPsecSegment{ipsecOriginalIP, ipsecAHTransport, ipsecTransport, ipsecPayload}
	case protocol == cryptoalg.IPsecESP && mode == cryptoalg.IPsecTransport:
		segments = []cryptoalg.IPsecSegment{
			ipsecOriginalIP, ipsecESPHeader,
			ipsecEncStart, ipsecTransport, ipsecPayload, ipsecESPTrailer, ipsecEncEnd,
			ipsecESPAuth,
		}
	case protocol == cryptoalg.IPsecAH && mode == cryptoalg.IPsecTunnel:
		segments = []cryptoalg.IPsecSegment{ipsecNewIP, ipsecAHTunnel, ipsecOriginalIP, ipsecTransport, ipsecPayload}
	case protocol == cryptoalg.IPsecESP && mode == cryptoalg.IPsecTunnel:
		segments = []cryptoalg.IPsecSegment{
			ipsecNewIP, ipsecESPHeader,
			ipsecEncStart, ipsecOriginalIP, ipsecTransport, ipsecPayload, ipsecESPTrailer, ipsecEncEnd,
			ipsecESPAuth,
		}
	default:
		return nil, cryptoalg.NewValidationError("Unsupported IPsec combination %q/%q; protocol must be ah or esp and mode transport or tunnel", protocol, mode)
	}

	i.logger.Info(fmt.Sprintf("IPsec %s %s layout with %d segments", protocol, mode, len(segments)))
	return &cryptoalg.IPsecLayout{Protocol: protocol, Mode: mode, Segments: segments}, nil
}
