package testutil

// WithStandardContent adds a small mixed dataset: per-item armors and
// weapons, a legacy catalog file, a few spells, and a property file.
func (b *Builder) WithStandardContent() *Builder {
	return b.
		WithArmor("leather",
			Name("Leather Armor"), Category("light"), AC("11 + dex", 2),
			Property("noisy", false)).
		WithArmor("plate",
			Name("Plate Armor"), Category("heavy"), AC("18", 0),
			Property("noisy", true)).
		WithWeapon("dagger",
			Name("Dagger"), Category("simple"),
			Property("finesse", true), Property("light", true)).
		WithWeaponCatalog("weapons_srd.yaml", "club", "mace").
		WithSpell("fireball",
			SpellName("Fireball"), Circle(20),
			Damage("fire"), SaveThrow("dex", 15),
			Dice("8d6"), Color("#FF4500")).
		WithSpell("wall-of-fire",
			SpellName("Wall of Fire"), Line(60, 1),
			Damage("fire"), Duration(10), OverTime(true)).
		WithPropertyFile("2024_basic", "finesse: Use dex for attack rolls\n")
}

// WithConflictingContent adds the same armor id in both layouts so
// precedence behavior can be exercised end to end.
func (b *Builder) WithConflictingContent(id string) *Builder {
	return b.
		WithArmorCatalog("armors_legacy.yaml", id).
		WithArmor(id, Name("Per-Item "+id))
}
