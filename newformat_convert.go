package sparse

// This file wires CSR as the common pivot format for every TypeConverter
// implementation's new ELL/SELL-P/HYBRID/SparsityCSR conversions, the same
// "convert via CSR/COO" policy the teacher already applies to CSC (see
// CSR.ToCSC/CSC.ToCSR in compressed.go).

// ToELL returns an ELLPACK sparse format version of the matrix.
func (c *CSR) ToELL() *ELL { return NewELLFromCSR(c) }

// ToSELLP returns a SELL-P sparse format version of the matrix (default
// slice size).
func (c *CSR) ToSELLP() *SELLP { return NewSELLPFromCSR(c, DefaultSliceSize) }

// ToHybrid returns a HYBRID sparse format version of the matrix (automatic
// partitioning strategy).
func (c *CSR) ToHybrid() *Hybrid { return NewHybridFromCSR(c, HybridAutomatic) }

// ToSparsityCSR returns the pattern-only CSR version of the matrix.
func (c *CSR) ToSparsityCSR() *SparsityCSR { return NewSparsityCSRFromCSR(c) }

// ToELL returns an ELLPACK sparse format version of the matrix, via CSR.
func (c *CSC) ToELL() *ELL { return c.ToCSR().ToELL() }

// ToSELLP returns a SELL-P sparse format version of the matrix, via CSR.
func (c *CSC) ToSELLP() *SELLP { return c.ToCSR().ToSELLP() }

// ToHybrid returns a HYBRID sparse format version of the matrix, via CSR.
func (c *CSC) ToHybrid() *Hybrid { return c.ToCSR().ToHybrid() }

// ToSparsityCSR returns the pattern-only CSR version of the matrix, via CSR.
func (c *CSC) ToSparsityCSR() *SparsityCSR { return c.ToCSR().ToSparsityCSR() }

// ToELL returns an ELLPACK sparse format version of the matrix, via CSR.
func (c *COO) ToELL() *ELL { return c.ToCSR().ToELL() }

// ToSELLP returns a SELL-P sparse format version of the matrix, via CSR.
func (c *COO) ToSELLP() *SELLP { return c.ToCSR().ToSELLP() }

// ToHybrid returns a HYBRID sparse format version of the matrix, via CSR.
func (c *COO) ToHybrid() *Hybrid { return c.ToCSR().ToHybrid() }

// ToSparsityCSR returns the pattern-only CSR version of the matrix, via CSR.
func (c *COO) ToSparsityCSR() *SparsityCSR { return c.ToCSR().ToSparsityCSR() }

// ToELL returns an ELLPACK sparse format version of the matrix, via CSR.
func (d *DOK) ToELL() *ELL { return d.ToCSR().ToELL() }

// ToSELLP returns a SELL-P sparse format version of the matrix, via CSR.
func (d *DOK) ToSELLP() *SELLP { return d.ToCSR().ToSELLP() }

// ToHybrid returns a HYBRID sparse format version of the matrix, via CSR.
func (d *DOK) ToHybrid() *Hybrid { return d.ToCSR().ToHybrid() }

// ToSparsityCSR returns the pattern-only CSR version of the matrix, via CSR.
func (d *DOK) ToSparsityCSR() *SparsityCSR { return d.ToCSR().ToSparsityCSR() }
