package wordfreq

const DefaultTopK = 100

type Cloud struct {
	Words      []Entry
	TotalTexts int
}

// BuildCloud runs the full count-and-rank pass over a corpus. k <= 0 falls
// back to DefaultTopK.
func BuildCloud(texts []string, analyzer Analyzer, k int) Cloud {
	if k <= 0 {
		k = DefaultTopK
	}
	table, qualified := Count(texts, analyzer)
	return Cloud{
		Words:      table.Top(k),
		TotalTexts: qualified,
	}
}
