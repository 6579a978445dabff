/*
Package markov provides a character-level n-gram toolkit for learning how
words are spelled and generating new, plausible-looking words from what was
learned.

Training and generation are two separate stages. A Trainer accumulates raw
context to next-character counts from wordlists and free text. Compile turns
a fully populated Trainer into an immutable Model whose per-context
cumulative-frequency tables support O(log k) weighted sampling. A Model can
be written to a compressed file and loaded back without retraining.

	t, _ := markov.NewTrainer(3)
	_ = t.IngestWordlistFile("words.tsv")
	m := markov.Compile(t)
	word, _ := m.GenerateWord(markov.NewSource(42))
*/
package markov
