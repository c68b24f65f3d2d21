package registry

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/trinity"
)

// Configuration is the content of the registry singleton.
type Configuration struct {
	Admin         trinity.Address   `protobuf:"bytes,1,opt,name=admin,proto3" json:"admin"`
	Treasury      trinity.Address   `protobuf:"bytes,2,opt,name=treasury,proto3" json:"treasury"`
	DeploymentTag Tag               `protobuf:"bytes,3,opt,name=deployment_tag,json=deploymentTag,proto3" json:"deployment_tag"`
	APISigners    []trinity.Address `protobuf:"bytes,4,rep,name=api_signers,json=apiSigners,proto3" json:"api_signers"`
	Moderators    []trinity.Address `protobuf:"bytes,5,rep,name=moderators,proto3" json:"moderators"`
}

type configurationWire Configuration

func (m *configurationWire) Reset()         { *m = configurationWire{} }
func (m *configurationWire) String() string { return proto.CompactTextString(m) }
func (*configurationWire) ProtoMessage()    {}

func (c *Configuration) Marshal() ([]byte, error)   { return proto.Marshal((*configurationWire)(c)) }
func (c *Configuration) Unmarshal(raw []byte) error { return proto.Unmarshal(raw, (*configurationWire)(c)) }
