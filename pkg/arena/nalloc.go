package arena

// NAlloc is the direct-API entry point named in spec.md §6
// ("NAlloc::new() -> handle"). It is simply a Manager; the alias lets
// callers spell the name spec.md uses for the construct-your-own-
// handle path, as distinct from the process-wide singleton behind
// [Allocate].
type NAlloc = Manager

// NewNAlloc is spec.md §6's direct-API constructor. Go has no way to
// defer Region reservation past construction the way a const-friendly
// Rust constructor can, so this eagerly reserves all three Regions;
// [ensureGlobal] is this module's one genuinely lazy entry point.
func NewNAlloc() (*NAlloc, error) { return New() }
