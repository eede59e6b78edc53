package commands

// RelInside exports relInside for testing.
var RelInside = relInside //nolint:gochecknoglobals // test export
