package types

import (
	"fmt"
	"strings"
	"sync"

	"github.com/oklog/ulid/v2"
	"github.com/teris-io/shortid"
)

// GenerateUUID returns a k-sortable unique identifier
func GenerateUUID() string {
	return ulid.Make().String()
}

// GenerateUUIDWithPrefix returns a k-sortable unique identifier
// with a prefix ex memb_0ujsswThIGTUYm2K8FjOOfXtY1K
func GenerateUUIDWithPrefix(prefix string) string {
	if prefix == "" {
		return GenerateUUID()
	}
	return fmt.Sprintf("%s_%s", prefix, GenerateUUID())
}

var (
	sidGenerator *shortid.Shortid
	once         sync.Once
)

// initializeSID initializes the shortid generator once
func initializeSID() {
	var err error
	sidGenerator, err = shortid.New(1, shortid.DefaultABC, 2342)
	if err != nil {
		panic("failed to initialize shortid generator: " + err.Error())
	}
}

// GenerateShortIDWithPrefix returns a short ID with a prefix.
// Total length is capped at 12 characters, e.g., `EN_XYZ12A8Q`.
// Used for human-facing order numbers on draw entries.
func GenerateShortIDWithPrefix(prefix string) string {
	once.Do(initializeSID)

	id, err := sidGenerator.Generate()
	if err != nil {
		return ""
	}
	id = strings.ReplaceAll(id, "-", "")

	availableLen := 12 - len(prefix)
	if availableLen <= 0 {
		return ""
	}

	if len(id) > availableLen {
		id = id[:availableLen]
	}

	return strings.ToUpper(fmt.Sprintf("%s%s", prefix, id))
}

const (
	// Prefixes for all domains and entities
	UUID_PREFIX_USER           = "user"
	UUID_PREFIX_PLAN           = "plan"
	UUID_PREFIX_BOOST_PACK     = "boost"
	UUID_PREFIX_MEMBERSHIP     = "memb"
	UUID_PREFIX_CREDIT_ENTRY   = "cred"
	UUID_PREFIX_PROMO_CODE     = "promo"
	UUID_PREFIX_DRAW           = "draw"
	UUID_PREFIX_DRAW_ENTRY     = "entry"
	UUID_PREFIX_RENEWAL_RECORD = "renew"
	UUID_PREFIX_PAYMENT        = "pay"

	SHORT_ID_PREFIX_ORDER = "EN"
)
