// Package random 提供检定使用的随机源
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
)

// NewSeed 使用crypto/rand生成种子
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("读取随机种子失败: %w", err)
	}

	return int64(binary.LittleEndian.Uint64(b[:])), nil
}
