// Package hybrid provides Vector, a sequence container that stores its first
// N elements in a fixed inline block and moves to heap storage once it holds
// more than N, moving back as soon as removals bring it to N or fewer.
//
// Storage transitions:
//
//	inline --append past N--> heap   capacity max(size*2, N*2)
//	heap   --append when full--> heap   capacity*2
//	heap   --removal to <= N--> inline   capacity N
//
// Every transition moves each live element in index order and retires the
// old representation. Element lifetimes can be observed with WithDrop, and
// transitions with WithObserver.
package hybrid
