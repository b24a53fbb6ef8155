package nameparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToHalfWidth(t *testing.T) {
	assert.Equal(t, "Hello World!", ToHalfWidth("Ｈｅｌｌｏ　Ｗｏｒｌｄ！"))
	assert.Equal(t, "(2023)", ToHalfWidth("（2023）"))
	assert.Equal(t, "混合 ABC 123", ToHalfWidth("混合　ＡＢＣ　１２３"))
	assert.Equal(t, "", ToHalfWidth(""))
}

func TestToHalfWidthIdempotent(t *testing.T) {
	inputs := []string{"Ｈｅｌｌｏ　Ｗｏｒｌｄ", "普通话 Normal", "（１９９９）", ""}
	for _, in := range inputs {
		once := ToHalfWidth(in)
		assert.Equal(t, once, ToHalfWidth(once), "input %q", in)
	}
}

func TestNormalizeSpaces(t *testing.T) {
	assert.Equal(t, "a b c", NormalizeSpaces("  a \t b  c  "))
	assert.Equal(t, "", NormalizeSpaces(""))
	assert.Equal(t, "", NormalizeSpaces("   "))
	assert.Equal(t, "one two", NormalizeSpaces("one\n\ntwo"))
}
