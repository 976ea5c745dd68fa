package random

import (
	"fmt"
	"math/rand"
	"sync"
)

// Source 均匀整数随机源，实现必须可并发调用
type Source interface {
	// Between 返回[min, max]闭区间内的整数，要求min <= max
	Between(min, max int) int
}

// Locked 带互斥锁的math/rand随机源
type Locked struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New 以固定种子创建随机源
func New(seed int64) *Locked {
	return &Locked{rng: rand.New(rand.NewSource(seed))}
}

// NewCrypto 以crypto/rand种子创建随机源
func NewCrypto() (*Locked, error) {
	seed, err := NewSeed()
	if err != nil {
		return nil, err
	}
	return New(seed), nil
}

func (l *Locked) Between(min, max int) int {
	if max < min {
		panic(fmt.Sprintf("random: Between(%d, %d) requires min <= max", min, max))
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return min + l.rng.Intn(max-min+1)
}
