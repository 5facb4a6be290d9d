package vision

// components returns the bounding box of every 8-connected foreground
// region in the mask, via iterative flood fill over a visited bitmap.
func components(m *mask) []Region {
	visited := make([]bool, len(m.pix))
	var out []Region

	stack := make([]int, 0, 1024)

	for start, v := range m.pix {
		if v == 0 || visited[start] {
			continue
		}

		minX, minY := m.width, m.height
		maxX, maxY := -1, -1

		stack = append(stack[:0], start)
		visited[start] = true

		for len(stack) > 0 {
			idx := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			x, y := idx%m.width, idx/m.width
			minX = min(minX, x)
			minY = min(minY, y)
			maxX = max(maxX, x)
			maxY = max(maxY, y)

			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					if dx == 0 && dy == 0 {
						continue
					}
					nx, ny := x+dx, y+dy
					if nx < 0 || nx >= m.width || ny < 0 || ny >= m.height {
						continue
					}
					nidx := ny*m.width + nx
					if m.pix[nidx] != 0 && !visited[nidx] {
						visited[nidx] = true
						stack = append(stack, nidx)
					}
				}
			}
		}

		out = append(out, Region{
			X: minX,
			Y: minY,
			W: maxX - minX + 1,
			H: maxY - minY + 1,
		})
	}

	return out
}
