package bench

// npuBench is the "NPU OpenVINO MatMul" row: a real implementation would
// run a small ONNX graph through whichever NPU execution provider is
// present, but no OpenVINO/NPU runtime binding exists in this dependency
// set, so the row always reports unavailable rather than being silently
// dropped when an NPU is detected.
type npuBench struct {
	deviceName string
}

// NewNPUPlaceholder builds the always-unavailable NPU row, appended once
// under CPU0 when BuildRunner is told an NPU device was detected.
func NewNPUPlaceholder(deviceName string) Benchmark {
	return &npuBench{deviceName: deviceName}
}

func (n *npuBench) Name() string { return "NPU OpenVINO MatMul" }

func (n *npuBench) IsAvailable() bool { return false }

func (n *npuBench) Run() Result {
	return notAvailable("OpenVINO NPU execution provider")
}
