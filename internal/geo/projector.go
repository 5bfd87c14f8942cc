//    Topic Distillery
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package geo

import (
	"fmt"
	"github.com/e-gun/TopicDistillery/internal/str"
	"github.com/e-gun/TopicDistillery/internal/vv"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"math"
	"sort"
)

const (
	COMP = "geo"
)

// JensenShannon - 0.5*KL(P||M) + 0.5*KL(Q||M) where M = (P+Q)/2; symmetric and bounded by ln 2
func JensenShannon(p, q []float64) float64 {
	m := make([]float64, len(p))
	floats.AddScaledTo(m, m, 0.5, p)
	floats.AddScaledTo(m, m, 0.5, q)
	// stat.KullbackLeibler() skips p[i] == 0, and m[i] > 0 wherever p[i] > 0
	return 0.5*stat.KullbackLeibler(p, m) + 0.5*stat.KullbackLeibler(q, m)
}

// DistanceMatrix - pairwise Jensen-Shannon divergence between the rows of phi
func DistanceMatrix(phi mat.Matrix) (*mat.SymDense, error) {
	const (
		FAIL1 = "need at least 2 topics to draw a distance map: %d"
		FAIL2 = "divergence between topics %d and %d is %v"
	)

	k, _ := phi.Dims()
	if k < 2 {
		return nil, str.NewProcError(COMP, str.ErrDegenerate, fmt.Sprintf(FAIL1, k))
	}

	rows := make([][]float64, k)
	for i := 0; i < k; i++ {
		rows[i] = mat.Row(nil, i, phi)
	}

	d := mat.NewSymDense(k, nil)
	for i := 0; i < k; i++ {
		for j := i + 1; j < k; j++ {
			js := JensenShannon(rows[i], rows[j])
			if math.IsNaN(js) || math.IsInf(js, 0) {
				return nil, str.NewProcError(COMP, str.ErrNumerical, fmt.Sprintf(FAIL2, i, j, js))
			}
			d.SetSym(i, j, js)
		}
	}
	return d, nil
}

// PCoA - classical multidimensional scaling of a distance matrix into 2 dimensions
func PCoA(dist mat.Symmetric) (*mat.Dense, error) {
	const (
		FAIL1 = "eigendecomposition failed"
		FAIL2 = "coordinate (%d, %d) is %v"
	)

	n := dist.SymmetricDim()

	// B = -0.5 * J D^2 J, with J = I - 11'/n
	sq := mat.NewDense(n, n, nil)
	sq.Apply(func(i, j int, v float64) float64 { return -0.5 * v * v }, dist)

	rmean := make([]float64, n)
	var gmean float64
	for i := 0; i < n; i++ {
		rmean[i] = floats.Sum(sq.RawRowView(i)) / float64(n)
		gmean += rmean[i]
	}
	gmean /= float64(n)

	b := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			b.SetSym(i, j, sq.At(i, j)-rmean[i]-rmean[j]+gmean)
		}
	}

	var es mat.EigenSym
	if ok := es.Factorize(b, true); !ok {
		return nil, str.NewProcError(COMP, str.ErrNumerical, FAIL1)
	}
	vals := es.Values(nil)
	var vecs mat.Dense
	es.VectorsTo(&vecs)

	// eigenvalues arrive in ascending order; take the two largest
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return vals[order[a]] > vals[order[b]] })

	coords := mat.NewDense(n, 2, nil)
	for c := 0; c < 2 && c < n; c++ {
		ev := order[c]
		scale := math.Sqrt(math.Max(vals[ev], 0))

		// an eigenvector's sign is arbitrary: make the largest-magnitude coordinate positive
		sign := 1.0
		var big float64
		for i := 0; i < n; i++ {
			if v := vecs.At(i, ev); math.Abs(v) > math.Abs(big) {
				big = v
			}
		}
		if big < 0 {
			sign = -1
		}

		for i := 0; i < n; i++ {
			v := sign * vecs.At(i, ev) * scale
			if math.IsNaN(v) {
				return nil, str.NewProcError(COMP, str.ErrNumerical, fmt.Sprintf(FAIL2, i, c, v))
			}
			coords.Set(i, c, v)
		}
	}
	return coords, nil
}

// Proportions - each topic's share of all tokens: sum over docs of len(d) * theta[d][k], normalized
func Proportions(theta mat.Matrix, doclengths []int) ([]float64, error) {
	const (
		FAIL1 = "%d document lengths for %d documents"
		FAIL2 = "the documents hold no tokens"
	)

	d, k := theta.Dims()
	if len(doclengths) != d {
		return nil, str.NewProcError(COMP, str.ErrMalformed, fmt.Sprintf(FAIL1, len(doclengths), d))
	}

	lens := mat.NewVecDense(d, nil)
	for i, l := range doclengths {
		lens.SetVec(i, float64(l))
	}

	var freq mat.VecDense
	freq.MulVec(theta.T(), lens)

	out := make([]float64, k)
	for i := 0; i < k; i++ {
		out[i] = freq.AtVec(i)
	}

	t := floats.Sum(out)
	if !(t > 0) || math.IsInf(t, 0) {
		return nil, str.NewProcError(COMP, str.ErrNumerical, FAIL2)
	}
	floats.Scale(1/t, out)
	return out, nil
}

// Project - the inter-topic distance map: coordinates plus each topic's share of the corpus (x100)
func Project(phi mat.Matrix, theta mat.Matrix, doclengths []int) ([]str.TopicPoint, error) {
	const (
		FAIL = "phi has %d topics but theta has %d"
	)

	kp, _ := phi.Dims()
	_, kt := theta.Dims()
	if kp != kt {
		return nil, str.NewProcError(COMP, str.ErrMalformed, fmt.Sprintf(FAIL, kp, kt))
	}

	dist, err := DistanceMatrix(phi)
	if err != nil {
		return nil, err
	}

	coords, err := PCoA(dist)
	if err != nil {
		return nil, err
	}

	props, err := Proportions(theta, doclengths)
	if err != nil {
		return nil, err
	}

	pts := make([]str.TopicPoint, kp)
	for i := range pts {
		pts[i] = str.TopicPoint{
			Topic: i,
			X:     coords.At(i, 0),
			Y:     coords.At(i, 1),
			Freq:  props[i] * vv.FREQSCALE,
		}
	}
	return pts, nil
}
