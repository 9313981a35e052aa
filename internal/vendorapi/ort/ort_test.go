package ort

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
)

func TestTableEntryWalksPointerArray(t *testing.T) {
	table := [4]uintptr{0xAAAA, 0xBBBB, 0xCCCC, 0xDDDD}
	base := uintptr(unsafe.Pointer(&table[0]))

	assert.Equal(t, uintptr(0xAAAA), tableEntry(base, 0))
	assert.Equal(t, uintptr(0xBBBB), tableEntry(base, 1))
	assert.Equal(t, uintptr(0xDDDD), tableEntry(base, 3))
}
