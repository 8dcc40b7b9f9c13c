package auth

import (
	"fmt"
	"math/rand"
)

var pseudonymAdjectives = []string{
	"Curious", "Brave", "Bright", "Calm", "Witty", "Kind", "Bold", "Quiet",
	"Swift", "Clever", "Gentle", "Noble", "Wise", "Fierce", "Humble", "Loyal",
	"Daring", "Serene", "Vibrant", "Eager", "Honest", "Graceful", "Mighty", "Peaceful",
	"Radiant", "Shrewd", "Spirited", "Steady", "Thoughtful", "Valiant", "Warm", "Zesty",
	"Agile", "Creative", "Focused", "Inventive", "Mindful", "Patient", "Resilient", "Skilled",
	"Adventurous", "Ambitious", "Artistic", "Cheerful", "Confident", "Cosmic", "Dazzling", "Dynamic",
	"Elegant", "Energetic", "Fearless", "Free", "Friendly", "Harmonious", "Independent", "Joyful",
	"Keen", "Lively", "Lucky", "Magical", "Mysterious", "Optimistic", "Playful", "Proud",
	"Quick", "Reliable", "Royal", "Sassy", "Sharp", "Silent", "Sleek", "Smart",
	"Stellar", "Strong", "Sunny", "Talented", "Tranquil", "Trusty", "Vivid", "Wild",
}

var pseudonymNouns = []string{
	"Otter", "Falcon", "Fox", "Panda", "Dolphin", "Hawk", "Sparrow", "Lynx",
	"Wolf", "Eagle", "Bear", "Owl", "Deer", "Tiger", "Raven", "Phoenix",
	"Dragon", "Leopard", "Crane", "Swan", "Turtle", "Jaguar", "Penguin", "Raccoon",
	"Badger", "Bison", "Cheetah", "Coyote", "Heron", "Koala", "Moose", "Platypus",
	"Puffin", "Salamander", "Seal", "Squirrel", "Starling", "Walrus", "Wombat", "Zebra",
	"Albatross", "Antelope", "Armadillo", "Bat", "Beaver", "Butterfly", "Camel", "Cardinal",
	"Chameleon", "Cobra", "Condor", "Cougar", "Crab", "Cricket", "Crow", "Dragonfly",
	"Elephant", "Elk", "Ferret", "Flamingo", "Frog", "Gazelle", "Gecko", "Giraffe",
	"Gorilla", "Hamster", "Hedgehog", "Hummingbird", "Iguana", "Jellyfish", "Kangaroo", "Kestrel",
	"Lion", "Llama", "Lobster", "Meerkat", "Narwhal", "Newt", "Octopus", "Opossum",
	"Ostrich", "Panther", "Parrot", "Pelican", "Python", "Quail", "Rhino",
}

// GeneratePseudonym returns an "AdjectiveAnimalNNN" alias, with NNN in
// 100-999. Assigned once at signup; reviews and comments display this
// instead of the account name.
func GeneratePseudonym() string {
	adj := pseudonymAdjectives[rand.Intn(len(pseudonymAdjectives))]
	noun := pseudonymNouns[rand.Intn(len(pseudonymNouns))]
	num := rand.Intn(900) + 100
	return fmt.Sprintf("%s%s%d", adj, noun, num)
}
