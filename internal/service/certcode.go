package service

import (
	"crypto/rand"
	"fmt"
	"io"
)

const (
	certCodePrefix   = "CERT-"
	certCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	certCodeGroupLen = 6
	// 36 の倍数のうち 256 未満で最大のもの。これ以上のバイトは捨てて偏りをなくす
	certCodeByteLimit = 252
)

// CodeGenerator は CERT-XXXXXX-XXXXXX 形式の修了証コードを作る。
// 乱数源は差し替え可能 (本番は crypto/rand.Reader)
type CodeGenerator struct {
	rand io.Reader
}

func NewCodeGenerator(r io.Reader) *CodeGenerator {
	if r == nil {
		r = rand.Reader
	}
	return &CodeGenerator{rand: r}
}

func (g *CodeGenerator) Generate() (string, error) {
	first, err := g.group()
	if err != nil {
		return "", err
	}
	second, err := g.group()
	if err != nil {
		return "", err
	}
	return certCodePrefix + first + "-" + second, nil
}

func (g *CodeGenerator) group() (string, error) {
	out := make([]byte, 0, certCodeGroupLen)
	buf := make([]byte, certCodeGroupLen)
	for len(out) < certCodeGroupLen {
		if _, err := io.ReadFull(g.rand, buf); err != nil {
			return "", fmt.Errorf("read random bytes: %w", err)
		}
		for _, b := range buf {
			if b >= certCodeByteLimit {
				continue
			}
			out = append(out, certCodeAlphabet[int(b)%len(certCodeAlphabet)])
			if len(out) == certCodeGroupLen {
				break
			}
		}
	}
	return string(out), nil
}
