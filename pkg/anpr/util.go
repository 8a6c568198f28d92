package anpr

// summedArea builds a (w+1)x(h+1) summed-area table with a zero border row and
// column, so window sums come out of rectSum in constant time.
func summedArea(vals []int, w, h int) []int {
	sat := make([]int, (w+1)*(h+1))
	for y := 1; y <= h; y++ {
		row := 0
		for x := 1; x <= w; x++ {
			row += vals[(y-1)*w+x-1]
			sat[y*(w+1)+x] = sat[(y-1)*(w+1)+x] + row
		}
	}
	return sat
}

// rectSum returns the inclusive sum over [x0,x1]x[y0,y1] from a summedArea
// table built for width w.
func rectSum(sat []int, w, x0, y0, x1, y1 int) int {
	return sat[(y1+1)*(w+1)+x1+1] - sat[y0*(w+1)+x1+1] - sat[(y1+1)*(w+1)+x0] + sat[y0*(w+1)+x0]
}
