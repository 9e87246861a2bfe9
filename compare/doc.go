// Package compare measures how far apart two concentration–time profiles are.
//
// 🚀 What it offers
//
//   - MaxAbsError, RMSE: pointwise norms for profiles on the same grid,
//     e.g. a numerical solution against its analytic counterpart.
//   - Warp: Dynamic Time Warping between profiles that differ by a delay or
//     a change of pace, e.g. the same absorption curve with and without a
//     lag time. Alignment.Shift turns the warping path into a time offset.
//
// ⚙️ Warping
//
//	D[0][0] = 0, D[i][0] = D[0][j] = +∞
//	D[i][j] = |a[i-1]-b[j-1]| + min(D[i-1][j-1], D[i-1][j]+p, D[i][j-1]+p)
//
// with p the slope penalty and cells outside the Sakoe–Chiba band
// |i-j| <= Window left at +∞. Ties prefer the diagonal move.
//
// Complexity: O(n·m) time; Warp stores n·m step codes, Distance two rows.
package compare
