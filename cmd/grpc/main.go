package main

import (
	"flag"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/zeromicro/go-zero/core/conf"
	"github.com/zeromicro/go-zero/core/logx"
	zerosvc "github.com/zeromicro/go-zero/core/service"

	"sol-dex-parser/internal/config"
	"sol-dex-parser/internal/logic/grpc"
	"sol-dex-parser/internal/mq"
	"sol-dex-parser/internal/svc"
)

var configFile = flag.String("f", "etc/grpc.yaml", "the config file")

func main() {
	defer func() {
		if r := recover(); r != nil {
			logx.Errorf("panic: %+v\nstack: %s", r, debug.Stack())
		}
	}()

	flag.Parse()

	var c config.GrpcConfig
	conf.MustLoad(*configFile, &c)

	serviceContext, err := svc.NewGrpcServiceContext(c)
	if err != nil {
		panic(err)
	}
	defer serviceContext.Close()

	grpcService, err := grpc.NewGrpcStreamManager(c, serviceContext.Filter, serviceContext.Queue)
	if err != nil {
		panic(err)
	}

	sg := zerosvc.NewServiceGroup()
	sg.Add(grpcService)

	if serviceContext.Progress != nil {
		grpcService.SetSlotObserver(serviceContext.Progress)
		sg.Add(serviceContext.Progress)
	}

	if serviceContext.Producer != nil {
		sink := mq.NewEventSink(
			serviceContext.Producer,
			c.KafkaProducerConf.Topic,
			c.KafkaProducerConf.Partitions,
			serviceContext.Queue,
			c.QueueConf.SpinBudget,
		)
		sg.Add(sink)
	}

	logx.Infof("Starting grpc stream service")
	sg.Start()

	// 等待退出信号
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	logx.Info("Shutting down services...")
	sg.Stop()
}
