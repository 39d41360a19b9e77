package field

import "fmt"

// Boundary selects how finite-difference stencils treat the two endpoints of
// the grid.
type Boundary int

const (
	// Periodic wraps the grid: the left neighbor of point 0 is point N-1.
	Periodic Boundary = iota
	// Reflecting enforces a zero-derivative (no-flux, Neumann) boundary.
	Reflecting
	// Fixed holds the value just outside the domain at zero (Dirichlet).
	Fixed
)

func (b Boundary) String() string {
	switch b {
	case Periodic:
		return "periodic"
	case Reflecting:
		return "reflecting"
	case Fixed:
		return "fixed"
	}
	return fmt.Sprintf("boundary(%d)", int(b))
}

// ParseBoundary maps a config/CLI name to a Boundary tag.
func ParseBoundary(s string) (Boundary, error) {
	switch s {
	case "periodic":
		return Periodic, nil
	case "reflecting", "neumann":
		return Reflecting, nil
	case "fixed", "dirichlet":
		return Fixed, nil
	}
	return 0, fmt.Errorf("unknown boundary condition: %q", s)
}

// Laplacian returns the centered three-point second-difference of f,
// L[i] = f[i-1] - 2*f[i] + f[i+1], with endpoints closed by bc.
// The grid spacing is not divided out; callers fold 1/dx² into their
// diffusion coefficient. Requires len(f) >= 2.
func Laplacian(f Field, bc Boundary) Field {
	dst := make(Field, len(f))
	LaplacianInto(dst, f, bc)
	return dst
}

// LaplacianInto is the allocation-free form of Laplacian used inside the
// stepping loop. dst and f must have equal length and must not alias.
func LaplacianInto(dst, f Field, bc Boundary) {
	n := len(f)
	if n < 2 || len(dst) != n {
		panic(fmt.Sprintf("laplacian: bad lengths dst=%d f=%d", len(dst), n))
	}

	for i := 1; i < n-1; i++ {
		dst[i] = f[i-1] - 2*f[i] + f[i+1]
	}

	switch bc {
	case Periodic:
		dst[0] = f[n-1] - 2*f[0] + f[1]
		dst[n-1] = f[n-2] - 2*f[n-1] + f[0]
	case Reflecting:
		// Mirror ghost points double the interior neighbor's contribution.
		dst[0] = 2 * (f[1] - f[0])
		dst[n-1] = 2 * (f[n-2] - f[n-1])
	case Fixed:
		dst[0] = -2*f[0] + f[1]
		dst[n-1] = -2*f[n-1] + f[n-2]
	}
}

// GradientInto writes the centered first difference (f[i+1]-f[i-1])/2 into
// dst under periodic boundaries. The spacing is not divided out.
func GradientInto(dst, f Field) {
	n := len(f)
	if n < 2 || len(dst) != n {
		panic(fmt.Sprintf("gradient: bad lengths dst=%d f=%d", len(dst), n))
	}
	for i := 1; i < n-1; i++ {
		dst[i] = (f[i+1] - f[i-1]) / 2
	}
	dst[0] = (f[1] - f[n-1]) / 2
	dst[n-1] = (f[0] - f[n-2]) / 2
}

// ThirdDerivativeInto writes the centered third difference
// (f[i+2] - 2*f[i+1] + 2*f[i-1] - f[i-2])/2 into dst under periodic
// boundaries. Requires len(f) >= 4. The spacing is not divided out.
func ThirdDerivativeInto(dst, f Field) {
	n := len(f)
	if n < 4 || len(dst) != n {
		panic(fmt.Sprintf("third derivative: bad lengths dst=%d f=%d", len(dst), n))
	}
	at := func(i int) float64 { return f[(i%n+n)%n] }
	for i := 0; i < n; i++ {
		dst[i] = (at(i+2) - 2*at(i+1) + 2*at(i-1) - at(i-2)) / 2
	}
}
