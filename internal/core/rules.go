package core

// NewDefaultRulesEngine builds a rules engine with the built-in admission policy
// in its fixed evaluation order: biome, water, space, social.
func NewDefaultRulesEngine(model CapacityModel) *RulesEngine {
	engine := NewRulesEngine()
	engine.Register(NewBiomeMatchRule())
	engine.Register(NewWaterRequirementRule())
	engine.Register(NewEnclosureCapacityRule(model))
	engine.Register(NewSocialCompatibilityRule())
	return engine
}
