// SPDX-License-Identifier: MIT

// Package vecgp is a small engine for vector-valued Gaussian processes built on
// matrix-valued kernels.
//
// What is in the box:
//
//	kernel/    rbf, dot_product, div_free and curl_free D×D block kernels,
//	           block tensors and flattened Gram matrices (single and batched)
//	gp/        kernel smoother, joint GP sampler, exact posterior inference
//	grid/      regular 2-D grids and finite-difference divergence/curl checks
//	matrix/    dense row-major matrices, LU with partial pivoting, Cholesky
//	cmd/vecgp  CLI: sample datasets of fields, check them, condition on them
//
// Quick example:
//
//	cfg, _ := kernel.New(kernel.DivFree, kernel.WithLengthScale(0.5))
//	g, _ := grid.New(-1, 1, 16)
//	points, field, _ := gp.SampleGrid(g, cfg, gp.DefaultObsNoise, gp.DefaultJitter, rand.NewSource(1))
//	stats, _ := g.Report(field) // stats.DivRatio ≈ 0
//	_ = points
//
// Conventions:
//
//   - Points are n×d row-major matrices; labels and fields are n×D.
//   - Gram row i·D+k and column j·D+l hold K(x_i, y_j)[k][l], matching the
//     row-major flattening of n×D label matrices.
//   - Every numerical failure is a returned error (errors.Is-compatible
//     sentinels); nothing panics on user input.
package vecgp
