// Package telemetry publishes board readings to an MQTT broker.
//
// ADC sweeps are encoded as protobuf ADCSweep messages and published to
// <prefix>card/<id>/adc.
package telemetry
