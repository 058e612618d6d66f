package provider

// Builtin returns a registry with every built-in dataset provider.
func Builtin() *Registry {
	r := NewRegistry()
	for _, p := range []struct {
		name string
		fn   Func
	}{
		{"pantheria", PanTHERIA},
		{"amniote", Amniote},
		{"elton_birds", EltonBirds},
		{"elton_mammals", EltonMammals},
	} {
		if err := r.Register(p.name, p.fn); err != nil {
			// Registration of the static set can only fail on a
			// duplicate name, which is a programming error.
			panic(err)
		}
	}
	return r
}
