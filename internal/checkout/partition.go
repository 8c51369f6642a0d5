package checkout

// PartitionByVendor groups resolved lines by their owning vendor. Groups
// come out in vendor first-encounter order and each group keeps the cart's
// insertion order, so materialization and outcome reporting are
// deterministic. Empty input yields an empty slice.
func PartitionByVendor(lines []ResolvedLine) []VendorGroup {
	groups := make([]VendorGroup, 0)
	index := make(map[int64]int)

	for _, line := range lines {
		i, seen := index[line.VendorID]
		if !seen {
			i = len(groups)
			index[line.VendorID] = i
			groups = append(groups, VendorGroup{VendorID: line.VendorID})
		}

		groups[i].Lines = append(groups[i].Lines, line)
		groups[i].Total += line.Subtotal()
	}

	return groups
}
