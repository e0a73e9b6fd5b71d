package clonegroups

import "gopkg.in/guregu/null.v3"

// PairedReadCount is the ranking value for top-clone selection: the TRA and
// TRB primary read counts added together. A missing operand makes the whole
// ranking missing rather than counting as zero, so a half-called clonotype
// never outranks a fully paired one.
func (c *CloneGroup) PairedReadCount() null.Float {
	if !c.TRAReadCount.Valid || !c.TRBReadCount.Valid {
		return null.Float{}
	}

	return null.FloatFrom(c.TRAReadCount.Float64 + c.TRBReadCount.Float64)
}

// TopClone picks the row with the greatest paired read count. Ties keep the
// earlier row. Rows with no ranking value lose to any ranked row; when no row
// has a ranking at all, the file's first row is picked. Returns nil only for
// an empty slice.
func TopClone(rows []*CloneGroup) *CloneGroup {
	if len(rows) == 0 {
		return nil
	}

	best := rows[0]
	bestRank := best.PairedReadCount()

	for _, row := range rows[1:] {
		rank := row.PairedReadCount()
		if !rank.Valid {
			continue
		}
		if !bestRank.Valid || rank.Float64 > bestRank.Float64 {
			best = row
			bestRank = rank
		}
	}

	return best
}
