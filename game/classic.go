package game

// CreateClassicMap initializes the 42 territory world map with its six continents.
func CreateClassicMap() *Map {
	m := NewMap()

	for id, name := range classicNames {
		m.AddTerritory(id, name)
	}

	for _, edge := range classicBorders {
		m.AddBorder(edge[0], edge[1])
	}

	for _, b := range classicBonuses {
		ids := []int{}
		for id := b.first; id <= b.last; id++ {
			ids = append(ids, id)
		}
		m.AddBonus(b.name, b.value, ids...)
	}

	return m
}

var classicNames = []string{
	// North America
	"Alaska", "Northwest Territory", "Greenland", "Alberta", "Ontario",
	"Quebec", "Western United States", "Eastern United States", "Central America",
	// Europe
	"Iceland", "Scandinavia", "Great Britain", "Northern Europe", "Ukraine",
	"Western Europe", "Southern Europe",
	// Asia
	"Ural", "Siberia", "Yakutsk", "Kamchatka", "Irkutsk", "Mongolia", "Japan",
	"Afghanistan", "China", "Middle East", "India", "Siam",
	// South America
	"Venezuela", "Peru", "Brazil", "Argentina",
	// Africa
	"North Africa", "Egypt", "Congo", "East Africa", "South Africa", "Madagascar",
	// Australia
	"Indonesia", "New Guinea", "Western Australia", "Eastern Australia",
}

var classicBonuses = []struct {
	name        string
	value       int
	first, last int
}{
	{"North America", 5, 0, 8},
	{"Europe", 5, 9, 15},
	{"Asia", 7, 16, 27},
	{"South America", 2, 28, 31},
	{"Africa", 3, 32, 37},
	{"Australia", 2, 38, 41},
}

var classicBorders = [][2]int{
	// North America
	{0, 1}, {0, 3}, {1, 2}, {1, 3}, {1, 4}, {2, 4}, {2, 5}, {3, 4}, {3, 6},
	{4, 5}, {4, 6}, {4, 7}, {5, 7}, {6, 7}, {6, 8}, {7, 8},
	// Europe
	{9, 10}, {9, 11}, {10, 11}, {10, 12}, {10, 13}, {11, 12}, {11, 14},
	{12, 13}, {12, 14}, {12, 15}, {13, 15}, {14, 15}, {2, 9},
	// Asia
	{16, 17}, {16, 23}, {16, 24}, {17, 18}, {17, 20}, {17, 21}, {17, 24},
	{18, 19}, {18, 20}, {19, 20}, {19, 21}, {19, 22}, {20, 21}, {21, 22},
	{21, 24}, {23, 24}, {23, 25}, {23, 26}, {24, 26}, {24, 27}, {25, 26},
	{26, 27}, {0, 19}, {13, 16}, {13, 23}, {13, 25}, {15, 25},
	// South America
	{28, 29}, {28, 30}, {29, 30}, {29, 31}, {30, 31}, {8, 28},
	// Africa
	{32, 33}, {32, 34}, {32, 35}, {33, 35}, {34, 35}, {34, 36}, {35, 36},
	{35, 37}, {36, 37}, {14, 32}, {15, 32}, {15, 33}, {25, 33}, {25, 35}, {30, 32},
	// Australia
	{38, 39}, {38, 40}, {39, 40}, {39, 41}, {40, 41}, {27, 38},
}
