// Package invest is the calculation engine behind the `inv` command-line tool.
// It answers a single question: given the deposits made into an existing
// investment and its current worth, is it worth selling it (paying the
// capital gains tax) to move part or all of the money into another
// investment vehicle with different yield, commission and fee assumptions?
//
// The engine is organized as a pipeline of pure functions:
//   - CPI Index: a table of consumer price index values per year (and
//     optionally per month) used to express past amounts in today's money.
//     It can be the built-in static table or be fetched from a remote
//     Source, with a deterministic fallback to the static table.
//   - Inflation adjustment: Adjust rescales nominal deposits by the ratio of
//     the latest index value to the index value at deposit time.
//   - Tax: TaxPolicy computes the capital gains tax due on the real gain
//     (the gain above the inflation adjusted deposits).
//   - Yield estimation: EstimateYield infers the annual yield implied by the
//     deposit history and the current value.
//   - Projection: Project compounds a value over a number of years with a
//     yearly yield, a yearly commission and a one-time transaction fee.
//   - Comparison: Compare projects the "stay" and "move" trajectories side
//     by side, finds the break-even year and issues a recommendation.
//
// Inputs arrive as text (RawInput) and are parsed into an immutable
// CalculationInput. Results carry Warnings for non-fatal conditions such as
// a forward-filled CPI value or a failed remote fetch. Nothing in the engine
// logs, panics on user input or depends on the wall clock.
package invest
