package launch

// syncGroups pairs the categories that must carry mirrored entries for the
// same title. Two groups today: the live pair and the completed pair.
var syncGroups = [][]Category{
	{CategoryDomesticLive, CategoryOverseasLive},
	{CategoryDomesticCompleted, CategoryOverseasCompleted},
}

// ResolveSyncGroup returns the full set of categories that must mirror the
// given one, including itself. Total: a category outside every group resolves
// to just itself. Symmetric by construction of the fixed table.
func ResolveSyncGroup(c Category) []Category {
	for _, group := range syncGroups {
		for _, member := range group {
			if member == c {
				out := make([]Category, len(group))
				copy(out, group)
				return out
			}
		}
	}
	return []Category{c}
}

// SyncSiblings returns the group members other than the given category.
func SyncSiblings(c Category) []Category {
	var out []Category
	for _, member := range ResolveSyncGroup(c) {
		if member != c {
			out = append(out, member)
		}
	}
	return out
}
