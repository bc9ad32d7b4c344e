// Package quotes feeds the motivational footer line.
package quotes

import "math/rand"

var quotes = []string{
	"Small steps every day add up to big results.",
	"Focus on progress, not perfection.",
	"The secret of getting ahead is getting started.",
	"Discipline is choosing what you want most over what you want now.",
	"Done is better than perfect.",
	"You don't have to be great to start, but you have to start to be great.",
	"A year from now you may wish you had started today.",
	"Study now, shine later.",
}

// Random returns a random quote.
func Random() string {
	return quotes[rand.Intn(len(quotes))]
}
