package scaler

// Tip sets by multiplier band. A multiplier of exactly 1 gets no tips.

var halvingTips = []string{
	"When halving a recipe, taste as you go: seasonings often need more than half the original amount.",
	"Use a smaller pan so the reduced volume still fills it; food in an oversized pan dries out faster.",
	"Check for doneness early since smaller batches cook through sooner.",
}

var doublingTips = []string{
	"Eggs and leavening agents rarely need full doubling; start with 1.5x and adjust.",
	"Cook in batches or use two pans rather than crowding one, especially when browning.",
	"Doubled bakes often need a slightly lower temperature and a longer time to cook through evenly.",
}

var triplingTips = []string{
	"Scale spices and salt to about 2x when tripling, then season to taste at the end.",
	"Tripled volumes take noticeably longer to come to temperature; budget extra time.",
	"Mix dry and wet ingredients separately before combining so large batches stay uniform.",
}

var largeBatchTips = []string{
	"For very large batches, seasonings, leavening, and aromatics should be scaled back and adjusted by taste.",
	"Work in batches for any step involving browning or frying; crowding ruins texture.",
	"Consider professional ratios by weight rather than volume at this scale for consistent results.",
}

// tipsForMultiplier picks the fixed tip set for a scaling multiplier.
func tipsForMultiplier(multiplier float64) []string {
	switch {
	case multiplier == 1:
		return nil
	case multiplier < 1:
		return halvingTips
	case multiplier <= 2:
		return doublingTips
	case multiplier <= 3:
		return triplingTips
	default:
		return largeBatchTips
	}
}
