package bench

// openCLFP32Source is the FP32 FMA kernel run by the "OpenCL FLOPS FP32"
// row, whether or not a CUDA driver is present, per spec.md section 4.9:
// 1,048,576 work-items, a
// 4096-iteration scalar FMA loop, compiled with -cl-fast-relaxed-math.
const openCLFP32Source = `
__kernel void fma_fp32(__global float *out, const int iters) {
    int gid = get_global_id(0);
    float v = (float)gid * 1.0e-6f;
    float c = 1.0000001f;
    for (int i = 0; i < iters; i++) {
        v = fma(v, c, v);
    }
    out[gid] = v;
}
`

// openCLBuildOptions matches spec.md section 4.9's compile flags.
const openCLBuildOptions = "-cl-fast-relaxed-math"

// openCLFP32WorkItems is the fixed global work size, per spec.md section
// 4.9 / 9: "The OpenCL FP32 kernel ignores global work-group size beyond
// n=1<<20; the source comment acknowledges it is a relative-sanity
// number, not peak." Kept fixed per the Open Questions decision.
const openCLFP32WorkItems = 1 << 20

// openCLFP32Iters is the per-thread inner-loop trip count.
const openCLFP32Iters = 4096
