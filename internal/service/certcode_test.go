package service_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go_4_elearning/internal/service"
)

func TestCodeGenerator_Format(t *testing.T) {
	gen := service.NewCodeGenerator(nil)
	seen := make(map[string]struct{}, 200)
	for i := 0; i < 200; i++ {
		code, err := gen.Generate()
		require.NoError(t, err)
		assert.Regexp(t, certCodePattern, code)
		seen[code] = struct{}{}
	}
	// 36^12 通りなので 200 回で重複することはまずない
	assert.Len(t, seen, 200)
}

func TestCodeGenerator_RejectsBiasedBytes(t *testing.T) {
	stream := []byte{
		252, 253, 254, 255, 0, 1, // 252 以上は捨てる -> "AB"
		2, 3, 4, 5, 6, 7, // "CDEF" で1グループ目が埋まり、残りは使わない
		35, 36, 71, 251, 26, 9, // 2グループ目 -> "9A990J"
	}
	gen := service.NewCodeGenerator(bytes.NewReader(stream))

	code, err := gen.Generate()

	require.NoError(t, err)
	assert.Equal(t, "CERT-ABCDEF-9A990J", code)
}

func TestCodeGenerator_ReaderError(t *testing.T) {
	gen := service.NewCodeGenerator(bytes.NewReader([]byte{1, 2, 3}))

	_, err := gen.Generate()

	assert.Error(t, err)
}
