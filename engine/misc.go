// Copyright 2014-2017 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// misc.go holds small helpers shared by the evaluator and search.
package engine

// distance[i][j] is the number of king steps needed to walk from i to j
// on an empty board (Chebyshev distance), used by king-proximity terms in
// the endgame evaluation.
var distance [64][64]int32

func init() {
	for i := SquareA1; i <= SquareH8; i++ {
		for j := SquareA1; j <= SquareH8; j++ {
			f := int32(i.File() - j.File())
			r := int32(i.Rank() - j.Rank())
			if f < 0 {
				f = -f
			}
			if r < 0 {
				r = -r
			}
			if f > r {
				distance[i][j] = f
			} else {
				distance[i][j] = r
			}
		}
	}
}
