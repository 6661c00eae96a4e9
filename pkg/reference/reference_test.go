package reference

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_Format(t *testing.T) {
	assert.Regexp(t, regexp.MustCompile(`^CCREF_[0-9a-f]{8}$`), CardCharge())
	assert.Regexp(t, regexp.MustCompile(`^BTCREF_[0-9a-f]{8}$`), BankTransfer())
	assert.Regexp(t, regexp.MustCompile(`^IATREF_[0-9a-f]{6}$`), InApp())
	assert.Regexp(t, regexp.MustCompile(`^BWREF_[0-9a-f]{8}$`), Withdrawal())
}

func TestNew_Distinct(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		ref := CardCharge()
		assert.False(t, seen[ref], "reference %s generated twice", ref)
		seen[ref] = true
	}
}

func TestLocalTransactionID_Range(t *testing.T) {
	for i := 0; i < 100; i++ {
		id := LocalTransactionID()
		assert.GreaterOrEqual(t, id, int64(10000))
		assert.Less(t, id, int64(100000))
	}
}
