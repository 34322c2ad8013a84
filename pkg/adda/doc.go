// Package adda implements the command set of the Decision-Computer USB
// 14/16-bit data acquisition board (USB-ADDA).
//
// Command frames are ASCII text with fixed-width fields, the board parses
// them by byte offset:
//
//	S<card>W<ch><val:2>    DIO write         S<card>R<ch>           DIO read
//	S<card>AG<range>       ADC range         S<card>AA<samples:2>   ADC samples
//	S<card>AD<ch>          ADC disable       S<card>AE<ch>          ADC enable
//	S<card>AR              ADC read all
//	S<card>D<ch><val:4>    DAC set           S<card>DJ<ch><val:4>   DAC adjust
//	S<card>DG<ch><range>   DAC range         S<card>DR<ch>          DAC reset
//
// Hex digits are lower case. ADC range and DAC channel are decimal digits.
package adda
