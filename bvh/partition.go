package bvh

// reorderOtherAxes stably reorders the two axis permutations that were not
// swept so that every index in [first,splitIndex] lands before every index
// in [splitIndex+1,last], without disturbing relative order within either
// half. The chosen axis's own permutation is already in the right order by
// construction (sweep walked it left to right).
func reorderOtherAxes(st *buildState, axis, first, last, splitIndex int) {
	chosen := st.ids[axis]
	for j := first; j <= splitIndex; j++ {
		st.pos[chosen[j]] = sideLeft
	}
	for j := splitIndex + 1; j <= last; j++ {
		st.pos[chosen[j]] = sideRight
	}

	for step := 1; step <= 2; step++ {
		d := (axis + step) % 3
		ids := st.ids[d]

		leftN, rightN := 0, 0
		for j := first; j <= last; j++ {
			id := ids[j]
			if st.pos[id] == sideLeft {
				ids[first+leftN] = id
				leftN++
			} else {
				st.tmp[rightN] = id
				rightN++
			}
		}
		for j := 0; j < rightN; j++ {
			ids[first+leftN+j] = st.tmp[j]
		}
	}
}
