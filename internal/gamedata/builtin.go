package gamedata

// BuiltinDefs returns the definitions compiled into the binaries: a
// minimal block palette with flat-color textures.
func BuiltinDefs() *Defs {
	return &Defs{
		Textures: map[string]string{
			"stone":      "#7d7d7d",
			"dirt":       "#8b5a2b",
			"grass_top":  "#5fa833",
			"grass_side": "#6b8e3c",
			"sand":       "#d9cf9a",
			"stick":      "#8a6d3b",
		},
		Blocks: []BlockDef{
			{Name: "stone", Faces: [6]string{"stone", "stone", "stone", "stone", "stone", "stone"}},
			{Name: "dirt", Faces: [6]string{"dirt", "dirt", "dirt", "dirt", "dirt", "dirt"}},
			{Name: "grass", Faces: [6]string{"grass_side", "grass_side", "grass_top", "dirt", "grass_side", "grass_side"}},
			{Name: "sand", Faces: [6]string{"sand", "sand", "sand", "sand", "sand", "sand"}},
		},
		Items: []ItemDef{
			{Name: "stick", Texture: "stick"},
		},
	}
}

// Builtin builds the compiled-in data set. The integrated server uses it
// when no data directory is configured; it is also handy in tests.
func Builtin() *Data {
	d, err := Build(BuiltinDefs())
	if err != nil {
		// The builtin table is compile-time fixed; failing to build it is
		// a programming error.
		panic(err)
	}
	return d
}
