package sign

import (
	"fmt"

	"github.com/tuneinsight/qtesla/utils"
)

var (
	// QTESLAI is a parameter set over the ring Z_q[X]/(X^512+1) targeting 128-bit security.
	QTESLAI = ParametersLiteral{
		Name:          "qTESLA-I",
		LogN:          9,
		Q:             4205569,
		BBits:         20,
		SBits:         10,
		H:             30,
		D:             21,
		GenA:          19,
		BoundE:        1586,
		BoundS:        1586,
		Sigma:         22.93,
		Xi:            27,
		Gaussian:      "qTESLA-I",
		SecurityLevel: 128,
	}

	// QTESLAIIISize is a parameter set over the ring Z_q[X]/(X^1024+1) targeting 256-bit security.
	QTESLAIIISize = ParametersLiteral{
		Name:          "qTESLA-III-size",
		LogN:          10,
		Q:             4206593,
		BBits:         20,
		SBits:         8,
		H:             48,
		D:             21,
		GenA:          38,
		BoundE:        910,
		BoundS:        910,
		Sigma:         7.64,
		Xi:            9,
		Gaussian:      "qTESLA-III-size",
		SecurityLevel: 256,
	}

	// QTESLAIIISpeed is a parameter set over the ring Z_q[X]/(X^1024+1) targeting 256-bit security.
	// It does not define a Gaussian sampler and cannot generate keys.
	QTESLAIIISpeed = ParametersLiteral{
		Name:          "qTESLA-III-speed",
		LogN:          10,
		Q:             8404993,
		BBits:         21,
		SBits:         9,
		H:             48,
		D:             22,
		GenA:          38,
		BoundE:        1147,
		BoundS:        1233,
		Sigma:         10.2,
		Xi:            12,
		SecurityLevel: 256,
	}

	// QTESLAV is a parameter set over the ring Z_q[X]/(X^2048+1) targeting 256-bit security.
	// It does not define a Gaussian sampler and cannot generate keys.
	QTESLAV = ParametersLiteral{
		Name:          "qTESLA-V",
		LogN:          11,
		Q:             16801793,
		BBits:         22,
		SBits:         9,
		H:             61,
		D:             23,
		GenA:          98,
		BoundE:        1554,
		BoundS:        1554,
		Sigma:         10.2,
		SecurityLevel: 256,
	}

	// QTESLAII is a parameter set over the sextic ring of degree 768 targeting 128-bit security.
	// It does not define a Gaussian sampler and cannot generate keys.
	QTESLAII = ParametersLiteral{
		Name:          "qTESLA-II",
		LogM:          7,
		Q:             8404993,
		BBits:         21,
		SBits:         8,
		H:             39,
		D:             22,
		GenA:          28,
		BoundE:        859,
		BoundS:        859,
		SecurityLevel: 128,
	}

	// QTESLAVSize is a parameter set over the sextic ring of degree 1536 targeting 256-bit security.
	// It does not define a Gaussian sampler and cannot generate keys.
	QTESLAVSize = ParametersLiteral{
		Name:          "qTESLA-V-size",
		LogM:          8,
		Q:             33564673,
		BBits:         23,
		SBits:         9,
		H:             77,
		D:             24,
		GenA:          73,
		BoundE:        1792,
		BoundS:        1792,
		SecurityLevel: 256,
	}
)

var registry = map[string]ParametersLiteral{
	QTESLAI.Name:        QTESLAI,
	QTESLAIIISize.Name:  QTESLAIIISize,
	QTESLAIIISpeed.Name: QTESLAIIISpeed,
	QTESLAV.Name:        QTESLAV,
	QTESLAII.Name:       QTESLAII,
	QTESLAVSize.Name:    QTESLAVSize,
}

// ParametersByName returns the checked parameters of the preset with the given name.
func ParametersByName(name string) (Parameters, error) {
	pl, ok := registry[name]
	if !ok {
		return Parameters{}, fmt.Errorf("sign.ParametersByName: unknown parameter set %q, available: %v", name, ParameterSetNames())
	}
	return NewParametersFromLiteral(pl)
}

// ParameterSetNames returns the sorted names of the presets.
func ParameterSetNames() []string {
	return utils.GetSortedKeys(registry)
}
