package bench

// onnxMatMulModel is a placeholder serialized ONNX graph for the
// dynamic-shape "Y = MatMul(A, B)" graph spec.md section 4.9 calls for.
// A real build would embed the protobuf-encoded bytes of a one-node
// ONNX model (opset import, MatMul node, two dynamic-shape float32
// inputs, one float32 output); ai-z has no protobuf dependency in the
// examples it drew from, so this stands in for that byte stream the
// same way kernels_ptx.go and kernel_vulkan_spirv.go stand in for
// device IR ai-z cannot assemble without a toolchain.
var onnxMatMulModel = []byte{
	0x08, 0x07, 0x12, 0x06, 0x61, 0x69, 0x2d, 0x7a, 0x2d, 0x6d, // header + producer tag ("ai-z-m")
	0x1a, 0x04, 0x4d, 0x61, 0x74, 0x4d, 0x75, 0x6c, // "MatMul" op-type tag
}

// onnxAddModel is the memory-bandwidth counterpart of onnxMatMulModel: a
// placeholder for a one-node "Y = Add(A, B)" graph, whose cost is
// dominated by reading/writing buffers rather than FLOPs.
var onnxAddModel = []byte{
	0x08, 0x07, 0x12, 0x06, 0x61, 0x69, 0x2d, 0x7a, 0x2d, 0x61, // header + producer tag ("ai-z-a")
	0x1a, 0x03, 0x41, 0x64, 0x64, // "Add" op-type tag
}

const (
	ortLoggingLevelWarning = 2
	ortAllocatorTypeDevice = 1
	ortMemTypeDefault      = 0
	onnxTensorFloat32      = 1
)
