package integrators

import (
	"math"

	"github.com/san-kum/kinsim/internal/kin"
)

// BackwardEuler is a first-order implicit stepper for stiff networks.
// Each step solves
//
//	y - c - dt*f(y, t+dt) = 0
//
// by damped Newton iteration with a finite-difference Jacobian. For
// mass-action systems whose explicit stability limit is far below any
// useful step (Robertson, the fast legs of the triangle scheme) this
// stays bounded at steps explicit methods cannot take.
type BackwardEuler struct {
	maxIter int
	tol     float64
}

func NewBackwardEuler() *BackwardEuler {
	return &BackwardEuler{maxIter: 25, tol: 1e-12}
}

func (be *BackwardEuler) Step(m kin.Mechanism, c kin.Conc, t, dt float64) kin.Conc {
	n := len(c)
	y := c.Clone() // initial guess: previous state

	for iter := 0; iter < be.maxIter; iter++ {
		f := m.Rates(y, t+dt)
		g := make([]float64, n)
		gNorm := 0.0
		for i := 0; i < n; i++ {
			g[i] = y[i] - c[i] - dt*f[i]
			gNorm += g[i] * g[i]
		}
		if math.Sqrt(gNorm) < be.tol*(1+c.Norm()) {
			break
		}

		jac := numJacobian(m, y, t+dt)
		// Newton matrix I - dt*J
		a := make([][]float64, n)
		for i := 0; i < n; i++ {
			a[i] = make([]float64, n)
			for j := 0; j < n; j++ {
				a[i][j] = -dt * jac[i][j]
			}
			a[i][i] += 1
		}

		delta, ok := solveDense(a, g)
		if !ok {
			break
		}
		for i := 0; i < n; i++ {
			y[i] -= delta[i]
		}
	}

	return y
}

// numJacobian computes df/dc by forward differences.
func numJacobian(m kin.Mechanism, c kin.Conc, t float64) [][]float64 {
	n := len(c)
	f0 := m.Rates(c, t)
	jac := make([][]float64, n)
	for i := range jac {
		jac[i] = make([]float64, n)
	}

	pert := c.Clone()
	for j := 0; j < n; j++ {
		h := 1e-8 * math.Max(math.Abs(c[j]), 1e-4)
		pert[j] = c[j] + h
		f1 := m.Rates(pert, t)
		for i := 0; i < n; i++ {
			jac[i][j] = (f1[i] - f0[i]) / h
		}
		pert[j] = c[j]
	}
	return jac
}

// solveDense solves a*x = b in place by Gaussian elimination with
// partial pivoting. Reports false for a singular matrix.
func solveDense(a [][]float64, b []float64) ([]float64, bool) {
	n := len(b)
	x := make([]float64, n)
	copy(x, b)

	for col := 0; col < n; col++ {
		pivot := col
		for row := col + 1; row < n; row++ {
			if math.Abs(a[row][col]) > math.Abs(a[pivot][col]) {
				pivot = row
			}
		}
		if math.Abs(a[pivot][col]) < 1e-300 {
			return nil, false
		}
		a[col], a[pivot] = a[pivot], a[col]
		x[col], x[pivot] = x[pivot], x[col]

		inv := 1.0 / a[col][col]
		for row := col + 1; row < n; row++ {
			factor := a[row][col] * inv
			if factor == 0 {
				continue
			}
			for k := col; k < n; k++ {
				a[row][k] -= factor * a[col][k]
			}
			x[row] -= factor * x[col]
		}
	}

	for row := n - 1; row >= 0; row-- {
		sum := x[row]
		for k := row + 1; k < n; k++ {
			sum -= a[row][k] * x[k]
		}
		x[row] = sum / a[row][row]
	}
	return x, true
}
