package phy

import "math/bits"

// Convolutional code parameters: the industry-standard K=7, rate 1/2 code.
const (
	constraintLength = 7
	numStates        = 1 << (constraintLength - 1) // 64
	tailBits         = constraintLength - 1

	genPoly1 = 0b1011011 // 133 octal
	genPoly2 = 0b1111001 // 171 octal
)

// convState holds the forward transitions of one trellis state.
type convState struct {
	nextState [2]uint8
	output    [2]uint8 // two coded bits packed as (out1<<1)|out2
}

var convTable = buildConvTable()

func parity(v uint8) uint8 {
	return uint8(bits.OnesCount8(v) & 1)
}

func buildConvTable() [numStates]convState {
	var table [numStates]convState
	for state := 0; state < numStates; state++ {
		for input := 0; input < 2; input++ {
			shiftReg := uint8(input<<(constraintLength-1)) | uint8(state)
			out1 := parity(shiftReg & genPoly1)
			out2 := parity(shiftReg & genPoly2)
			table[state].output[input] = out1<<1 | out2
			table[state].nextState[input] = shiftReg >> 1
		}
	}
	return table
}

// ConvolutionalEncode encodes info bits with the K=7 rate-1/2 code, appending
// six tail zeros to terminate the trellis. The coded length is
// 2*(len(info)+6). Returns nil for empty input.
func ConvolutionalEncode(info []bool) []bool {
	if len(info) == 0 {
		return nil
	}
	coded := make([]bool, 0, 2*(len(info)+tailBits))
	state := uint8(0)

	emit := func(input int) {
		out := convTable[state].output[input]
		coded = append(coded, out>>1&1 == 1, out&1 == 1)
		state = convTable[state].nextState[input]
	}
	for _, b := range info {
		input := 0
		if b {
			input = 1
		}
		emit(input)
	}
	for i := 0; i < tailBits; i++ {
		emit(0) // force back to the zero state
	}
	return coded
}

const negInf = -1e30

// ViterbiDecode runs soft-decision maximum-likelihood decoding over the
// received LLRs (two per trellis stage, positive favoring bit 1) and strips
// the tail. Returns nil if the LLR count is odd or too short to contain any
// information bits.
func ViterbiDecode(llr []float64) []bool {
	if len(llr) == 0 || len(llr)%2 != 0 {
		return nil
	}
	numStages := len(llr) / 2
	infoLen := numStages - tailBits
	if infoLen <= 0 {
		return nil
	}

	metrics := make([][numStates]float64, numStages+1)
	history := make([][numStates]uint8, numStages+1) // packed (prevState<<1)|input
	for s := 0; s < numStates; s++ {
		metrics[0][s] = negInf
	}
	metrics[0][0] = 0.0 // encoder starts in the zero state

	for stage := 0; stage < numStages; stage++ {
		llr0 := llr[2*stage]
		llr1 := llr[2*stage+1]
		for s := 0; s < numStates; s++ {
			metrics[stage+1][s] = negInf
		}
		for state := 0; state < numStates; state++ {
			if metrics[stage][state] == negInf {
				continue
			}
			for input := 0; input < 2; input++ {
				next := convTable[state].nextState[input]
				out := convTable[state].output[input]

				branch := 0.0
				if out>>1&1 == 1 {
					branch += llr0
				} else {
					branch -= llr0
				}
				if out&1 == 1 {
					branch += llr1
				} else {
					branch -= llr1
				}

				metric := metrics[stage][state] + branch
				if metric > metrics[stage+1][next] {
					metrics[stage+1][next] = metric
					history[stage+1][next] = uint8(state)<<1 | uint8(input)
				}
			}
		}
	}

	// Traceback from the zero state (trellis is terminated).
	decoded := make([]bool, infoLen)
	state := uint8(0)
	for stage := numStages; stage > 0; stage-- {
		h := history[stage][state]
		if stage <= infoLen {
			decoded[stage-1] = h&1 == 1
		}
		state = h >> 1
	}
	return decoded
}
