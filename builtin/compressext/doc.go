// Package compressext registers CompressedBin, a built-in Ext type (wire
// code CodeCompressedBin) that wraps an arbitrary byte payload in one of
// several general-purpose compression algorithms before it hits the wire.
//
// The codec implementations (NoOp, LZ4, S2, Zstd) are adapted from the
// teacher repo's compress package: the same Compressor/Decompressor/Codec
// interface split, the same pooled compressor reuse for LZ4 and pooled
// encoder/decoder reuse for pure-Go Zstd, and the same cgo/pure-Go build-tag split for Zstd (valyala/gozstd when
// cgo is available, klauspost/compress/zstd otherwise). What changed is
// the domain: where the teacher chose an algorithm per time-series payload
// via blob encoder options, CompressedBin carries its algorithm choice
// inline in the Ext payload, since a general MessagePack value has no
// header to configure it externally.
package compressext
