package diag

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunReturnsZeroForEveryFlag(t *testing.T) {
	for _, f := range []Flag{PCIe, ADLX, IGCL, IGCLFull, D3DKMT, PDHGpu} {
		assert.Equal(t, 0, Run(f))
	}
}
