package outbreak

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/roach88/siqr/internal/population"
)

// DomainRun prefixes run digests. The version suffix allows the encoding to
// change without colliding with older digests.
const DomainRun = "siqr/run/v1"

// hashWithDomain computes SHA256(domain + 0x00 + data).
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// digestInput is serialized with encoding/json, whose struct field order is
// fixed, so equal results always encode to equal bytes.
type digestInput struct {
	Series []int  `json:"series"`
	Final  string `json:"final"`
}

// Digest identifies the trajectory of a run: its series and its final
// population. Two runs with the same parameters and seed share a digest.
func Digest(r *Result) (string, error) {
	data, err := json.Marshal(digestInput{
		Series: r.Series,
		Final:  encodeStates(r.Final),
	})
	if err != nil {
		return "", fmt.Errorf("digest: marshal: %w", err)
	}
	return hashWithDomain(DomainRun, data), nil
}

func encodeStates(p population.Population) string {
	var b strings.Builder
	b.Grow(len(p))
	for _, s := range p {
		b.WriteString(s.String())
	}
	return b.String()
}
