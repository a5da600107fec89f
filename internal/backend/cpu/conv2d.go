package cpu

import (
	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas32"

	"github.com/born-ml/dehaze/internal/parallel"
	"github.com/born-ml/dehaze/internal/tensor"
)

// Conv2D performs 2D convolution using im2col algorithm.
//
// Input shape: [batch, in_channels, height, width]
// Kernel shape: [out_channels, in_channels, kernel_h, kernel_w]
// Output shape: [batch, out_channels, out_h, out_w]
//
// Algorithm: Im2col
//  1. Transform input patches into columns (im2col)
//  2. View kernel as a [C_out, C_in*K_h*K_w] matrix
//  3. Single SGEMM (gonum blas32)
//  4. Reorder output to [N, C_out, H_out, W_out]
//
// A channel count that does not match the kernel fails with a *tensor.ShapeError.
func (cpu *CPUBackend) Conv2D(input, kernel *tensor.RawTensor, stride, padding int) (*tensor.RawTensor, error) {
	inputShape := input.Shape()
	kernelShape := kernel.Shape()

	if len(inputShape) != 4 {
		return nil, tensor.NewShapeError("conv2d", "input must be 4D [N,C,H,W], got %dD %v", len(inputShape), inputShape)
	}
	if len(kernelShape) != 4 {
		return nil, tensor.NewShapeError("conv2d", "kernel must be 4D [C_out,C_in,K_h,K_w], got %dD %v", len(kernelShape), kernelShape)
	}
	if input.DType() != tensor.Float32 {
		return nil, tensor.NewDTypeError("conv2d", input.DType())
	}
	if kernel.DType() != tensor.Float32 {
		return nil, tensor.NewDTypeError("conv2d", kernel.DType())
	}
	if stride <= 0 || padding < 0 {
		return nil, tensor.NewShapeError("conv2d", "invalid stride %d / padding %d", stride, padding)
	}

	N := inputShape[0]     // batch size
	CIn := inputShape[1]   // input channels
	H := inputShape[2]     // input height
	W := inputShape[3]     // input width
	COut := kernelShape[0] // output channels
	CInK := kernelShape[1] // kernel input channels (must match CIn)
	KH := kernelShape[2]   // kernel height
	KW := kernelShape[3]   // kernel width

	if CIn != CInK {
		return nil, tensor.NewShapeError("conv2d", "input channels %d != kernel channels %d", CIn, CInK)
	}

	// out = (in + 2*padding - k) / stride + 1
	HOut := (H+2*padding-KH)/stride + 1
	WOut := (W+2*padding-KW)/stride + 1
	if HOut <= 0 || WOut <= 0 {
		return nil, tensor.NewShapeError("conv2d", "invalid output dimensions: out_h=%d, out_w=%d (check stride/padding)", HOut, WOut)
	}

	output, err := tensor.NewRaw(tensor.Shape{N, COut, HOut, WOut}, tensor.Float32, cpu.device)
	if err != nil {
		return nil, err
	}

	g := convGeometry{
		n: N, c: CIn, h: H, w: W,
		kh: KH, kw: KW,
		hOut: HOut, wOut: WOut,
		stride: stride, padding: padding,
	}
	conv2dFloat32(output.AsFloat32(), input.AsFloat32(), kernel.AsFloat32(), COut, g, cpu.parallel)

	return output, nil
}

// convGeometry bundles the extents shared by im2col and the output reorder.
type convGeometry struct {
	n, c, h, w      int
	kh, kw          int
	hOut, wOut      int
	stride, padding int
}

// conv2dFloat32 performs Conv2D for float32 using im2col + SGEMM.
//
//  1. Im2col: [N, C, H, W] -> colBuf [N*H_out*W_out, C*K_h*K_w]
//  2. SGEMM:  kernel [C_out, C*K_h*K_w] x colBufᵀ -> [C_out, N*H_out*W_out]
//  3. Reorder to [N, C_out, H_out, W_out]
func conv2dFloat32(out, input, kernel []float32, cOut int, g convGeometry, cfg parallel.Config) {
	colWidth := g.c * g.kh * g.kw
	colHeight := g.n * g.hOut * g.wOut
	colBuf := make([]float32, colHeight*colWidth)

	parallel.For(colHeight, func(row int) {
		im2colRowFloat32(colBuf[row*colWidth:(row+1)*colWidth], input, row, g)
	}, cfg)

	gemmOut := make([]float32, cOut*colHeight)
	blas32.Gemm(blas.NoTrans, blas.Trans, 1,
		blas32.General{Rows: cOut, Cols: colWidth, Stride: colWidth, Data: kernel},
		blas32.General{Rows: colHeight, Cols: colWidth, Stride: colWidth, Data: colBuf},
		0,
		blas32.General{Rows: cOut, Cols: colHeight, Stride: colHeight, Data: gemmOut},
	)

	// Source layout: [c, n*H_out*W_out + hw]; destination: [n, c, hw]
	plane := g.hOut * g.wOut
	parallel.ForBatch(g.n, cOut, func(n, c int) {
		src := gemmOut[c*colHeight+n*plane : c*colHeight+(n+1)*plane]
		dst := out[(n*cOut+c)*plane : (n*cOut+c+1)*plane]
		copy(dst, src)
	}, cfg)
}

// im2colRowFloat32 fills one row of the column matrix: the flattened input
// patch [C, K_h, K_w] under output position row = (n, out_h, out_w).
// Positions falling into the padding read as zero.
func im2colRowFloat32(dst, input []float32, row int, g convGeometry) {
	n := row / (g.hOut * g.wOut)
	rem := row % (g.hOut * g.wOut)
	outH := rem / g.wOut
	outW := rem % g.wOut

	// Top-left corner in input space
	hStart := outH*g.stride - g.padding
	wStart := outW*g.stride - g.padding

	idx := 0
	for c := 0; c < g.c; c++ {
		base := (n*g.c + c) * g.h * g.w
		for kh := 0; kh < g.kh; kh++ {
			h := hStart + kh
			for kw := 0; kw < g.kw; kw++ {
				w := wStart + kw
				if h >= 0 && h < g.h && w >= 0 && w < g.w {
					dst[idx] = input[base+h*g.w+w]
				} else {
					dst[idx] = 0
				}
				idx++
			}
		}
	}
}
