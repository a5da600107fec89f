package model

import (
	"github.com/born-ml/dehaze/internal/params"
	"github.com/born-ml/dehaze/internal/tensor"
)

// UniformParams returns a complete parameter store in which every weight
// element equals weight and every bias element equals bias.
//
// UniformParams(0, 0) gives a network whose transmission map is zero
// everywhere, so Forward maps every input to ones.
func UniformParams(weight, bias float32) (params.MapStore, error) {
	store := make(params.MapStore, 2*len(specs))
	for _, spec := range specs {
		w, err := filled(spec.WeightShape(), weight)
		if err != nil {
			return nil, err
		}
		b, err := filled(spec.BiasShape(), bias)
		if err != nil {
			return nil, err
		}
		store[spec.Name+".weight"] = w
		store[spec.Name+".bias"] = b
	}
	return store, nil
}

func filled(shape tensor.Shape, value float32) (*tensor.RawTensor, error) {
	raw, err := tensor.NewRaw(shape, tensor.Float32, tensor.CPU)
	if err != nil {
		return nil, err
	}
	if value != 0 {
		data := raw.AsFloat32()
		for i := range data {
			data[i] = value
		}
	}
	return raw, nil
}
