// SPDX-License-Identifier: MIT

// Package kernel evaluates matrix-valued covariance kernels and assembles Gram matrices.
//
// Four families are supported (see Family): rbf, dot_product, div_free and curl_free.
// Evaluate returns the unflattened (n, m, D, D) block tensor; Assemble and Gram
// produce the flattened (n·D)×(m·D) matrix whose row i·D+k is point i, component k.
// Every operation has a batched counterpart sharing the same algebra; batch items
// are computed independently on a worker pool.
//
// Hyperparameters travel in an explicit Config built with New and With* options.
// Failures carry operation, family and shapes in *OpError and match the package
// sentinels with errors.Is.
package kernel
