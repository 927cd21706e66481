package dsp

import (
	"fmt"
	"math"
	"math/cmplx"
)

// Butterworth is a zero-phase Butterworth high-pass filter. Coefficients are
// designed once via the bilinear transform; Filter applies them forward and
// backward so the result has no phase shift.
type Butterworth struct {
	order  int
	cutoff float64
	b, a   []float64
	zi     []float64 // steady-state filter state for a unit step input
}

// NewButterworth designs a high-pass filter of the given order with the given
// cutoff, normalized to the Nyquist frequency (0 < cutoff < 1).
func NewButterworth(order int, cutoff float64) (*Butterworth, error) {
	if order < 1 {
		return nil, fmt.Errorf("butterworth: order must be positive, got %d", order)
	}
	if cutoff <= 0 || cutoff >= 1 {
		return nil, fmt.Errorf("butterworth: cutoff must be in (0, 1), got %g", cutoff)
	}

	b, a := highpassCoeffs(order, cutoff)
	zi, err := stepState(b, a)
	if err != nil {
		return nil, fmt.Errorf("butterworth: %w", err)
	}

	return &Butterworth{order: order, cutoff: cutoff, b: b, a: a, zi: zi}, nil
}

// Filter applies the filter forward and backward over an odd extension of the
// signal and returns a new slice; the input is not modified. The pad length
// is clamped for short signals so any non-empty input is accepted.
func (f *Butterworth) Filter(signal []float64) []float64 {
	if len(signal) == 0 {
		return nil
	}

	padlen := 3 * len(f.a)
	if padlen > len(signal)-1 {
		padlen = len(signal) - 1
	}

	ext := oddExt(signal, padlen)
	y := f.lfilter(ext, ext[0])
	reverse(y)
	y = f.lfilter(y, y[0])
	reverse(y)

	out := make([]float64, len(signal))
	copy(out, y[padlen:padlen+len(signal)])
	return out
}

// Coeffs returns the transfer function numerator and denominator.
func (f *Butterworth) Coeffs() (b, a []float64) {
	return append([]float64(nil), f.b...), append([]float64(nil), f.a...)
}

// highpassCoeffs designs the digital transfer function: analog Butterworth
// prototype, low-pass to high-pass substitution at the pre-warped cutoff,
// then the bilinear transform.
func highpassCoeffs(order int, cutoff float64) (b, a []float64) {
	// Prototype poles sit evenly spaced on the left half of the unit circle;
	// the prototype has no zeros and unit gain.
	poles := make([]complex128, order)
	for k := 0; k < order; k++ {
		m := float64(2*k - order + 1)
		poles[k] = -cmplx.Exp(complex(0, math.Pi*m/float64(2*order)))
	}

	// Pre-warp so the digital response crosses at the requested frequency.
	const fs = 2.0
	warped := complex(2*fs*math.Tan(math.Pi*cutoff/fs), 0)

	// Low-pass -> high-pass: invert the poles about the cutoff, zeros move to
	// the origin. Gain picks up prod(-z)/prod(-p) of the low-pass form.
	zeros := make([]complex128, order)
	prodP := complex(1, 0)
	for i, p := range poles {
		prodP *= -p
		poles[i] = warped / p
	}
	gain := real(1 / prodP)

	// Bilinear transform; the zeros at the origin land on z = 1.
	fs2 := complex(2*fs, 0)
	num, den := complex(1, 0), complex(1, 0)
	for i := range zeros {
		num *= fs2 - zeros[i]
		zeros[i] = (fs2 + zeros[i]) / (fs2 - zeros[i])
	}
	for i := range poles {
		den *= fs2 - poles[i]
		poles[i] = (fs2 + poles[i]) / (fs2 - poles[i])
	}
	gain *= real(num / den)

	return realPoly(zeros, gain), realPoly(poles, 1)
}

// realPoly expands the monic polynomial with the given roots and scales the
// coefficients. Complex roots must come in conjugate pairs; the imaginary
// parts cancel.
func realPoly(roots []complex128, scale float64) []float64 {
	coeffs := make([]complex128, 1, len(roots)+1)
	coeffs[0] = 1
	for _, r := range roots {
		coeffs = append(coeffs, 0)
		for j := len(coeffs) - 1; j >= 1; j-- {
			coeffs[j] -= r * coeffs[j-1]
		}
	}

	out := make([]float64, len(coeffs))
	for i, c := range coeffs {
		out[i] = scale * real(c)
	}
	return out
}

// stepState computes the internal filter state that makes a step input start
// at steady state, solving (I - A^T) zi = b[1:] - a[1:]*b[0] with A the
// companion matrix of the denominator.
func stepState(b, a []float64) ([]float64, error) {
	n := len(a)
	m := n - 1

	mat := make([][]float64, m)
	rhs := make([]float64, m)
	for i := 0; i < m; i++ {
		mat[i] = make([]float64, m)
		mat[i][0] = a[i+1]
		if i == 0 {
			mat[i][0]++
		} else {
			mat[i][i] = 1
		}
		if i < m-1 {
			mat[i][i+1] = -1
		}
		rhs[i] = b[i+1] - a[i+1]*b[0]
	}

	return solve(mat, rhs)
}

// solve runs Gaussian elimination with partial pivoting on a small system.
func solve(mat [][]float64, rhs []float64) ([]float64, error) {
	n := len(rhs)
	for col := 0; col < n; col++ {
		pivot := col
		for row := col + 1; row < n; row++ {
			if math.Abs(mat[row][col]) > math.Abs(mat[pivot][col]) {
				pivot = row
			}
		}
		if mat[pivot][col] == 0 {
			return nil, fmt.Errorf("singular state system")
		}
		mat[col], mat[pivot] = mat[pivot], mat[col]
		rhs[col], rhs[pivot] = rhs[pivot], rhs[col]

		for row := col + 1; row < n; row++ {
			factor := mat[row][col] / mat[col][col]
			for k := col; k < n; k++ {
				mat[row][k] -= factor * mat[col][k]
			}
			rhs[row] -= factor * rhs[col]
		}
	}

	x := make([]float64, n)
	for row := n - 1; row >= 0; row-- {
		sum := rhs[row]
		for k := row + 1; k < n; k++ {
			sum -= mat[row][k] * x[k]
		}
		x[row] = sum / mat[row][row]
	}
	return x, nil
}

// lfilter runs the direct form II transposed difference equation with the
// initial state scaled by the first extended sample.
func (f *Butterworth) lfilter(x []float64, scale float64) []float64 {
	n := len(f.a)
	z := make([]float64, n-1)
	for i := range z {
		z[i] = f.zi[i] * scale
	}

	y := make([]float64, len(x))
	for i, xi := range x {
		yi := f.b[0]*xi + z[0]
		for j := 0; j < n-2; j++ {
			z[j] = f.b[j+1]*xi + z[j+1] - f.a[j+1]*yi
		}
		z[n-2] = f.b[n-1]*xi - f.a[n-1]*yi
		y[i] = yi
	}
	return y
}

// oddExt mirrors the signal about its endpoints so the filter warms up on
// data that continues the signal's slope.
func oddExt(x []float64, pad int) []float64 {
	ext := make([]float64, 0, len(x)+2*pad)
	first, last := x[0], x[len(x)-1]
	for i := pad; i >= 1; i-- {
		ext = append(ext, 2*first-x[i])
	}
	ext = append(ext, x...)
	for i := len(x) - 2; i >= len(x)-1-pad; i-- {
		ext = append(ext, 2*last-x[i])
	}
	return ext
}

func reverse(x []float64) {
	for i, j := 0, len(x)-1; i < j; i, j = i+1, j-1 {
		x[i], x[j] = x[j], x[i]
	}
}
